package users

import (
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"taskvine/models"
	"taskvine/utils"

	"github.com/google/uuid"
)

const maxProofBytes = 5 << 20 // 5 MiB

var allowedProofExt = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".pdf":  true,
}

// POST /users/uploads/proof
// Multipart upload of a proof screenshot. The object goes to S3-compatible
// storage under a per-user prefix; the returned URL is what submit expects
// in proof_url.
func UploadProofHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok || uid == 0 {
		utils.WriteError(w, http.StatusUnauthorized, utils.CodeAuthError, "Unauthorized")
		return
	}

	if err := r.ParseMultipartForm(maxProofBytes); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid upload, max file size is 5 MB"})
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Missing file field"})
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedProofExt[ext] {
		utils.WriteJSON(w, http.StatusUnsupportedMediaType, utils.APIResponse{Success: false, Message: "Only jpg, png, webp or pdf proofs are accepted"})
		return
	}

	objectKey := fmt.Sprintf("proofs/%d/%s/%s%s", uid, models.Today(), uuid.NewString(), ext)
	if err := utils.UploadProofObject(r.Context(), objectKey, file); err != nil {
		log.Printf("[uploads] store proof error for user %d: %v", uid, err)
		utils.WriteJSON(w, http.StatusBadGateway, utils.APIResponse{Success: false, Message: "Could not store the file, try again"})
		return
	}

	url, err := utils.SignedProofURL(r.Context(), objectKey, 7*24*time.Hour)
	if err != nil {
		log.Printf("[uploads] sign proof url error for user %d: %v", uid, err)
		utils.WriteJSON(w, http.StatusBadGateway, utils.APIResponse{Success: false, Message: "Could not store the file, try again"})
		return
	}

	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{
		Success: true,
		Message: "Proof uploaded",
		Data: map[string]interface{}{
			"object_key": objectKey,
			"proof_url":  url,
		},
	})
}
