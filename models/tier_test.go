package models

import "testing"

func TestTierFor_Thresholds(t *testing.T) {
	cases := []struct {
		purchased int
		want      string
	}{
		{0, TierBasic},
		{99, TierBasic},
		{100, TierGold},
		{499, TierGold},
		{500, TierPlatinum},
		{999, TierPlatinum},
		{1000, TierDiamond},
		{5000, TierDiamond},
	}
	for _, c := range cases {
		if got := TierFor(c.purchased); got != c.want {
			t.Errorf("TierFor(%d) = %s, want %s", c.purchased, got, c.want)
		}
	}
}

func TestTierFor_AlwaysRecomputed(t *testing.T) {
	// Setting credits_purchased to 500 yields Platinum regardless of what
	// the user's tier field said before.
	u := User{Tier: TierBasic, CreditsPurchased: 500}
	if got := TierFor(u.CreditsPurchased); got != TierPlatinum {
		t.Fatalf("expected Platinum at 500 purchased, got %s", got)
	}
}

func TestTierSpecFor_KnownTiers(t *testing.T) {
	basic := TierSpecFor(TierBasic)
	if basic.CreditCost != 1 {
		t.Errorf("Basic credit cost = %d, want 1", basic.CreditCost)
	}
	diamond := TierSpecFor(TierDiamond)
	if diamond.Earning != 1.20 {
		t.Errorf("Diamond earning = %v, want 1.20", diamond.Earning)
	}
}

func TestTierSpecFor_UnknownFallsBackToBasic(t *testing.T) {
	spec := TierSpecFor("Obsidian")
	if spec.Name != TierBasic {
		t.Fatalf("unknown tier resolved to %s, want Basic", spec.Name)
	}
}

func TestTiers_OrderedBasicUpward(t *testing.T) {
	tiers := Tiers()
	if len(tiers) != 4 {
		t.Fatalf("expected 4 tiers, got %d", len(tiers))
	}
	for i := 1; i < len(tiers); i++ {
		if tiers[i].UnlockAt <= tiers[i-1].UnlockAt {
			t.Errorf("tier order broken at %s", tiers[i].Name)
		}
	}
}
