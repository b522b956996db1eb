package utils

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// Task generation calls an OpenAI-compatible chat completion endpoint to
// draft a marketplace task for a category. Best effort: any failure means
// "no task generated" and the caller reports it, never retries silently.

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// GeneratedTask is the zero-or-one candidate returned by the collaborator.
type GeneratedTask struct {
	Description  string `json:"description"`
	Instructions string `json:"instructions"`
}

const taskgenSystemPrompt = "You write one small online task (post a comment, write a review) " +
	"for a micro-task marketplace. Answer with a JSON object containing exactly " +
	"two string fields: description and instructions. No other text."

// GenerateTask asks the completion API for one candidate task of the given
// type, optionally anchored to a location. 30s budget.
func GenerateTask(ctx context.Context, taskType, location string) (*GeneratedTask, error) {
	apiKey := os.Getenv("TASKGEN_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("TASKGEN_API_KEY not set")
	}
	apiURL := os.Getenv("TASKGEN_API_URL")
	if apiURL == "" {
		apiURL = "https://api.groq.com/openai/v1/chat/completions"
	}
	model := os.Getenv("TASKGEN_MODEL")
	if model == "" {
		model = "llama-3.1-70b-versatile"
	}

	prompt := fmt.Sprintf("Draft a %s task.", taskType)
	if location != "" {
		prompt += fmt.Sprintf(" It should concern %s.", location)
	}
	reqBody := chatRequest{
		Model:       model,
		Messages:    []chatMessage{{Role: "system", Content: taskgenSystemPrompt}, {Role: "user", Content: prompt}},
		Temperature: 0.7,
		MaxTokens:   500,
	}
	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("taskgen API error: status %d, body: %s", resp.StatusCode, string(body))
	}

	var chatResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(chatResp.Choices) == 0 {
		return nil, fmt.Errorf("no choices in response")
	}

	return parseGeneratedTask(chatResp.Choices[0].Message.Content)
}

// parseGeneratedTask extracts the JSON object from the model reply, which
// may be wrapped in code fences or prose.
func parseGeneratedTask(content string) (*GeneratedTask, error) {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON object in reply")
	}
	var task GeneratedTask
	if err := json.Unmarshal([]byte(content[start:end+1]), &task); err != nil {
		return nil, fmt.Errorf("malformed task JSON: %w", err)
	}
	task.Description = strings.TrimSpace(task.Description)
	task.Instructions = strings.TrimSpace(task.Instructions)
	if task.Description == "" {
		return nil, fmt.Errorf("generated task has no description")
	}
	return &task, nil
}
