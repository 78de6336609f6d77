package effects

import (
	"fmt"
	"strconv"
	"strings"
)

// UnknownEffectError reports an effect-definition clause that names no known
// effect type. Catalog loading treats it as fatal.
type UnknownEffectError struct {
	Clause string
}

func (e *UnknownEffectError) Error() string {
	return fmt.Sprintf("unknown effect clause %q", e.Clause)
}

// Parse turns a semicolon-separated effect-definition string into typed
// effect instances. Clause order is preserved. An empty definition yields no
// effects; any malformed or unknown clause fails the whole parse.
func Parse(definition string) ([]Effect, error) {
	definition = strings.TrimSpace(definition)
	if definition == "" {
		return nil, nil
	}

	var parsed []Effect
	for _, raw := range strings.Split(definition, ";") {
		clause := strings.TrimSpace(raw)
		if clause == "" {
			continue
		}
		effect, err := parseClause(clause)
		if err != nil {
			return nil, err
		}
		parsed = append(parsed, effect)
	}
	return parsed, nil
}

// MustParse parses a definition and panics on error. Only for statically
// known definitions in tests.
func MustParse(definition string) []Effect {
	parsed, err := Parse(definition)
	if err != nil {
		panic(err)
	}
	return parsed
}

// Definition returns the canonical definition string for a list of effects,
// the inverse of Parse.
func Definition(list []Effect) string {
	clauses := make([]string, 0, len(list))
	for _, e := range list {
		clauses = append(clauses, e.Clause())
	}
	return strings.Join(clauses, ";")
}

func parseClause(clause string) (Effect, error) {
	parts := strings.Split(clause, ":")
	name, args := parts[0], parts[1:]

	switch name {
	case "stat_boost":
		if len(args) != 2 {
			return nil, badClause(clause, "want stat_boost:<stat>:<amount>")
		}
		if !ValidStat(args[0]) {
			return nil, badClause(clause, fmt.Sprintf("unknown stat %q", args[0]))
		}
		amount, err := parseInt(clause, args[1])
		if err != nil {
			return nil, err
		}
		return &StatBoost{Stat: Stat(args[0]), Amount: amount}, nil

	case "set_self_tussle_cost":
		if len(args) < 1 || len(args) > 2 {
			return nil, badClause(clause, "want set_self_tussle_cost:<cost>[:not_turn_1]")
		}
		cost, err := parseInt(clause, args[0])
		if err != nil {
			return nil, err
		}
		notTurn1 := false
		if len(args) == 2 {
			if args[1] != "not_turn_1" {
				return nil, badClause(clause, fmt.Sprintf("unknown condition %q", args[1]))
			}
			notTurn1 = true
		}
		return &SetSelfTussleCost{Cost: cost, NotTurn1: notTurn1}, nil

	case "set_team_tussle_cost":
		cost, err := singleInt(clause, args)
		if err != nil {
			return nil, err
		}
		return &SetTeamTussleCost{Cost: cost}, nil

	case "cannot_tussle":
		if len(args) != 0 {
			return nil, badClause(clause, "takes no arguments")
		}
		return &CannotTussle{}, nil

	case "auto_win":
		if len(args) != 0 {
			return nil, badClause(clause, "takes no arguments")
		}
		return &AutoWin{}, nil

	case "opponent_immunity":
		if len(args) != 0 {
			return nil, badClause(clause, "takes no arguments")
		}
		return &OpponentImmunity{}, nil

	case "team_opponent_immunity":
		if len(args) != 0 {
			return nil, badClause(clause, "takes no arguments")
		}
		return &TeamOpponentImmunity{}, nil

	case "reduce_cost_per_sleeping":
		amount, err := singleInt(clause, args)
		if err != nil {
			return nil, err
		}
		return &ReduceCostPerSleeping{Amount: amount}, nil

	case "increase_opponent_costs":
		amount, err := singleInt(clause, args)
		if err != nil {
			return nil, err
		}
		return &IncreaseOpponentCosts{Amount: amount}, nil

	case "direct_attack_override":
		if len(args) != 0 {
			return nil, badClause(clause, "takes no arguments")
		}
		return &DirectAttackOverride{}, nil

	case "gain_cc":
		if len(args) < 1 || len(args) > 2 {
			return nil, badClause(clause, "want gain_cc:<amount>[:not_first_turn]")
		}
		amount, err := parseInt(clause, args[0])
		if err != nil {
			return nil, err
		}
		notFirst := false
		if len(args) == 2 {
			if args[1] != "not_first_turn" {
				return nil, badClause(clause, fmt.Sprintf("unknown condition %q", args[1]))
			}
			notFirst = true
		}
		return &GainCC{Amount: amount, NotFirstTurn: notFirst}, nil

	case "sleep_target":
		switch len(args) {
		case 0:
			return &SleepTarget{Min: 1, Max: 1}, nil
		case 2:
			min, err := parseInt(clause, args[0])
			if err != nil {
				return nil, err
			}
			max, err := parseInt(clause, args[1])
			if err != nil {
				return nil, err
			}
			if min < 1 || max < min {
				return nil, badClause(clause, "want 1 <= min <= max")
			}
			return &SleepTarget{Min: min, Max: max}, nil
		default:
			return nil, badClause(clause, "want sleep_target or sleep_target:<min>:<max>")
		}

	case "sleep_all":
		if len(args) != 0 {
			return nil, badClause(clause, "takes no arguments")
		}
		return &SleepAll{}, nil

	case "wake_target":
		if len(args) != 0 {
			return nil, badClause(clause, "takes no arguments")
		}
		return &WakeTarget{}, nil

	case "steal_target":
		if len(args) != 0 {
			return nil, badClause(clause, "takes no arguments")
		}
		return &StealTarget{}, nil

	case "copy_card":
		if len(args) != 0 {
			return nil, badClause(clause, "takes no arguments")
		}
		return &CopyCard{}, nil

	case "on_sleeped_gain_cc":
		amount, err := singleInt(clause, args)
		if err != nil {
			return nil, err
		}
		return &OnSleepedGainCC{Amount: amount}, nil

	case "activated_sleep":
		cost, err := singleInt(clause, args)
		if err != nil {
			return nil, err
		}
		if cost < 0 {
			return nil, badClause(clause, "cost must be non-negative")
		}
		return &ActivatedSleep{Cost: cost}, nil

	case "alt_cost_sleep_ally":
		if len(args) != 0 {
			return nil, badClause(clause, "takes no arguments")
		}
		return &AltCostSleepAlly{}, nil
	}

	return nil, &UnknownEffectError{Clause: clause}
}

func singleInt(clause string, args []string) (int, error) {
	if len(args) != 1 {
		return 0, badClause(clause, "want exactly one integer argument")
	}
	return parseInt(clause, args[0])
}

func parseInt(clause, arg string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil {
		return 0, badClause(clause, fmt.Sprintf("invalid integer %q", arg))
	}
	return n, nil
}

func badClause(clause, reason string) error {
	return fmt.Errorf("malformed effect clause %q: %s", clause, reason)
}
