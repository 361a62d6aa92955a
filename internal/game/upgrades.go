package game

import (
	"fmt"
	"strings"
)

// Upgrade identifies one of the persistent upgrades
type Upgrade uint8

const (
	// ExtraStart rerolls the starting hand level+1 times and keeps the best
	ExtraStart Upgrade = iota
	// DealerNerves raises the dealer threshold and may burn a dealer card
	DealerNerves
	// BonusPayout scales ordinary wins by 1 + 0.25*level
	BonusPayout

	NumUpgrades = 3
)

// MaxUpgradeLevel is the cap shared by every upgrade
const MaxUpgradeLevel = 3

// AllUpgrades lists the upgrades in display order
var AllUpgrades = [NumUpgrades]Upgrade{ExtraStart, DealerNerves, BonusPayout}

// nervesBurnChance indexed by DealerNerves level
var nervesBurnChance = [MaxUpgradeLevel + 1]float64{0, 0.3, 0.6, 0.9}

func (u Upgrade) String() string {
	switch u {
	case ExtraStart:
		return "Extra Start"
	case DealerNerves:
		return "Dealer Nerves"
	case BonusPayout:
		return "Bonus Payout"
	default:
		return "Unknown"
	}
}

// ParseUpgrade accepts names like "extra-start", "dealer_nerves" or "bonus"
func ParseUpgrade(s string) (Upgrade, error) {
	norm := strings.NewReplacer("-", "", "_", "", " ", "").Replace(strings.ToLower(s))
	switch norm {
	case "extrastart", "extra":
		return ExtraStart, nil
	case "dealernerves", "nerves":
		return DealerNerves, nil
	case "bonuspayout", "bonus":
		return BonusPayout, nil
	default:
		return 0, fmt.Errorf("unknown upgrade %q", s)
	}
}

// UpgradeLevel is one upgrade slot
type UpgradeLevel struct {
	Level int
	Max   int
}

// UpgradeSystem tracks upgrade levels and the point balance that buys them.
// The zero value has no points and every slot capped at zero; use
// NewUpgradeSystem.
type UpgradeSystem struct {
	levels [NumUpgrades]UpgradeLevel
	points int
}

// NewUpgradeSystem returns all upgrades at level 0 with no points
func NewUpgradeSystem() UpgradeSystem {
	var u UpgradeSystem
	for i := range u.levels {
		u.levels[i] = UpgradeLevel{Max: MaxUpgradeLevel}
	}
	return u
}

// Purchase spends one point to raise kind by one level. It returns false and
// changes nothing when there are no points or the upgrade is maxed.
func (u *UpgradeSystem) Purchase(kind Upgrade) bool {
	if int(kind) >= NumUpgrades || u.points <= 0 {
		return false
	}
	slot := &u.levels[kind]
	if slot.Level >= slot.Max {
		return false
	}
	slot.Level++
	u.points--
	return true
}

// AddPoint credits one upgrade point
func (u *UpgradeSystem) AddPoint() {
	u.points++
}

// Reset drops every level and the point balance
func (u *UpgradeSystem) Reset() {
	*u = NewUpgradeSystem()
}

// Points returns the unspent balance
func (u UpgradeSystem) Points() int {
	return u.points
}

// Level returns the current level of kind
func (u UpgradeSystem) Level(kind Upgrade) int {
	if int(kind) >= NumUpgrades {
		return 0
	}
	return u.levels[kind].Level
}

// Slot returns the (level, max) pair for kind
func (u UpgradeSystem) Slot(kind Upgrade) UpgradeLevel {
	if int(kind) >= NumUpgrades {
		return UpgradeLevel{}
	}
	return u.levels[kind]
}

// CanPurchase reports whether Purchase(kind) would succeed
func (u UpgradeSystem) CanPurchase(kind Upgrade) bool {
	s := u.Slot(kind)
	return u.points > 0 && s.Level < s.Max
}

// StartTrials is the number of trial starting hands ExtraStart grants
func (u UpgradeSystem) StartTrials() int {
	return u.Level(ExtraStart) + 1
}

// BurnChance is the probability that the dealer burns a card this round
func (u UpgradeSystem) BurnChance() float64 {
	return burnChance(u.Level(DealerNerves))
}

// WinPayout scales an ordinary win by the BonusPayout level, rounding down
func (u UpgradeSystem) WinPayout(bet int) int {
	return bet * (4 + u.Level(BonusPayout)) / 4
}

func burnChance(level int) float64 {
	if level <= 0 {
		return 0
	}
	if level >= len(nervesBurnChance) {
		return nervesBurnChance[len(nervesBurnChance)-1]
	}
	return nervesBurnChance[level]
}
