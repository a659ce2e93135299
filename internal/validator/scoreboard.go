package validator

import "fpcheck/pkg/models"

// Scoreboard holds the per-role tallies of one validation run.
type Scoreboard struct {
	tallies []models.Tally
	index   map[string]int
}

func NewScoreboard(roles []models.Role) *Scoreboard {
	sb := &Scoreboard{index: make(map[string]int, len(roles))}
	for _, r := range roles {
		sb.index[r.Name] = len(sb.tallies)
		sb.tallies = append(sb.tallies, models.Tally{Role: r})
	}
	return sb
}

func (sb *Scoreboard) tally(role models.Role) *models.Tally {
	i, ok := sb.index[role.Name]
	if !ok {
		sb.index[role.Name] = len(sb.tallies)
		sb.tallies = append(sb.tallies, models.Tally{Role: role})
		i = len(sb.tallies) - 1
	}
	return &sb.tallies[i]
}

// Attempt counts a comparison whose role file exists.
func (sb *Scoreboard) Attempt(role models.Role) {
	sb.tally(role).Total++
}

// Matched counts a comparison that found both sides equal.
func (sb *Scoreboard) Matched(role models.Role) {
	sb.tally(role).Matches++
}

// Tally returns the score of role.
func (sb *Scoreboard) Tally(role models.Role) models.Tally {
	return *sb.tally(role)
}

// Tallies returns a copy of all tallies in role order.
func (sb *Scoreboard) Tallies() []models.Tally {
	out := make([]models.Tally, len(sb.tallies))
	copy(out, sb.tallies)
	return out
}
