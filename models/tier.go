package models

// Tier names, lowest to highest.
const (
	TierBasic    = "Basic"
	TierGold     = "Gold"
	TierPlatinum = "Platinum"
	TierDiamond  = "Diamond"
)

// TierSpec describes the per-task economics of a reward tier.
type TierSpec struct {
	Name       string  `json:"name"`
	CreditCost int     `json:"credit_cost"` // credits debited when a task in this tier is reserved
	Earning    float64 `json:"earning"`     // balance credited when a submission is approved
	UnlockAt   int     `json:"unlock_at"`   // cumulative credits purchased required to unlock
}

// Ordered highest threshold first so TierFor can take the first match.
var tierTable = []TierSpec{
	{Name: TierDiamond, CreditCost: 5, Earning: 1.20, UnlockAt: 1000},
	{Name: TierPlatinum, CreditCost: 3, Earning: 0.60, UnlockAt: 500},
	{Name: TierGold, CreditCost: 2, Earning: 0.25, UnlockAt: 100},
	{Name: TierBasic, CreditCost: 1, Earning: 0.10, UnlockAt: 0},
}

// TierFor maps cumulative credits purchased to a tier name. The tier is
// always recomputed from this table, never stored independently, so it
// cannot drift from credits_purchased.
func TierFor(creditsPurchased int) string {
	for _, t := range tierTable {
		if creditsPurchased >= t.UnlockAt {
			return t.Name
		}
	}
	return TierBasic
}

// TierSpecFor returns the economics for a tier name. Unknown names fall
// back to Basic.
func TierSpecFor(name string) TierSpec {
	for _, t := range tierTable {
		if t.Name == name {
			return t
		}
	}
	return tierTable[len(tierTable)-1]
}

// ValidTier reports whether name is one of the four known tiers.
func ValidTier(name string) bool {
	for _, t := range tierTable {
		if t.Name == name {
			return true
		}
	}
	return false
}

// Tiers returns the reward table ordered Basic upward, for marketplace display.
func Tiers() []TierSpec {
	out := make([]TierSpec, 0, len(tierTable))
	for i := len(tierTable) - 1; i >= 0; i-- {
		out = append(out, tierTable[i])
	}
	return out
}
