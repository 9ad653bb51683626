package verifier

import (
	"fmt"
	"strings"
)

// Phase groups the checks of one verification stage.
type Phase string

const (
	PhaseService   Phase = "service"
	PhaseTools     Phase = "tools"
	PhaseFiles     Phase = "files"
	PhaseLimits    Phase = "limits"
	PhaseUninstall Phase = "uninstall"
)

// Phases lists every phase in execution order.
var Phases = []Phase{PhaseService, PhaseTools, PhaseFiles, PhaseLimits, PhaseUninstall}

// ParsePhase converts a phase name, case-insensitively.
func ParsePhase(s string) (Phase, error) {
	name := Phase(strings.ToLower(strings.TrimSpace(s)))
	for _, p := range Phases {
		if p == name {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown phase %q (valid: %s)", s, phaseNames())
}

func phaseNames() string {
	names := make([]string, len(Phases))
	for i, p := range Phases {
		names[i] = string(p)
	}
	return strings.Join(names, ", ")
}
