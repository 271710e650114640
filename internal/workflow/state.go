package workflow

import "fmt"

// CurrentPhaseIndex returns the position of the current phase, or -1.
func CurrentPhaseIndex(p *Project) int {
	for i, entry := range p.Phases {
		if entry.Name == p.CurrentPhase {
			return i
		}
	}
	return -1
}

// IsLastPhase reports whether the project is at synthesis.
func IsLastPhase(p *Project) bool {
	idx := CurrentPhaseIndex(p)
	return idx >= 0 && idx == len(p.Phases)-1
}

// CanAdvance returns an error if the project cannot move past its current phase.
func CanAdvance(p *Project) error {
	if p.Status != StatusActive {
		return fmt.Errorf("project %q is not active (status: %s)", p.ID, p.Status)
	}

	idx := CurrentPhaseIndex(p)
	if idx < 0 {
		return fmt.Errorf("unknown current phase %q in project %q", p.CurrentPhase, p.ID)
	}
	if idx >= len(p.Phases)-1 {
		return fmt.Errorf("project %q is already at the final phase %q", p.ID, p.CurrentPhase)
	}
	return nil
}

// Advance completes the current phase and starts the next one. The final
// phase is never auto-completed; call Complete once its artifact is saved.
func Advance(p *Project) error {
	if err := CanAdvance(p); err != nil {
		return err
	}

	idx := CurrentPhaseIndex(p)
	now := timestamp()

	p.Phases[idx].Status = PhaseCompleted
	p.Phases[idx].CompletedAt = now

	next := idx + 1
	p.Phases[next].Status = PhaseInProgress
	p.Phases[next].StartedAt = now

	p.CurrentPhase = p.Phases[next].Name
	p.UpdatedAt = now
	return nil
}

// Complete marks the final phase and the project completed.
func Complete(p *Project) error {
	if p.Status != StatusActive {
		return fmt.Errorf("project %q is not active (status: %s)", p.ID, p.Status)
	}
	if !IsLastPhase(p) {
		return fmt.Errorf("cannot complete project %q: not at the final phase (current: %s)", p.ID, p.CurrentPhase)
	}

	idx := CurrentPhaseIndex(p)
	now := timestamp()

	p.Phases[idx].Status = PhaseCompleted
	p.Phases[idx].CompletedAt = now
	p.Status = StatusCompleted
	p.UpdatedAt = now
	return nil
}

// RecordScore stores the score of the current phase's artifact.
func RecordScore(p *Project, score int) error {
	idx := CurrentPhaseIndex(p)
	if idx < 0 {
		return fmt.Errorf("unknown current phase %q in project %q", p.CurrentPhase, p.ID)
	}
	s := score
	p.Phases[idx].Score = &s
	p.UpdatedAt = timestamp()
	return nil
}
