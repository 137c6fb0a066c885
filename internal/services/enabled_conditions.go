package services

import (
	"context"
	"errors"
	"strings"

	domain "github.com/hanko-field/frontend-metadata/internal/domain"
)

// MetadataEnabledConfigPath is the store setting that switches metadata output.
const MetadataEnabledConfigPath = "klevu_frontend/metadata/enabled"

// MetadataEnabledCondition passes when the store flag is set.
type MetadataEnabledCondition struct{}

var _ IsEnabledCondition = MetadataEnabledCondition{}

// Execute reads the store flag. Missing, "0" and "false" values are disabled.
func (MetadataEnabledCondition) Execute(_ context.Context, store domain.Store) (bool, error) {
	value, ok := store.ConfigValue(MetadataEnabledConfigPath)
	if !ok {
		return false, nil
	}
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "0", "false":
		return false, nil
	default:
		return true, nil
	}
}

// ConditionFunc adapts a function to IsEnabledCondition.
type ConditionFunc func(ctx context.Context, store domain.Store) (bool, error)

// Execute calls f.
func (f ConditionFunc) Execute(ctx context.Context, store domain.Store) (bool, error) {
	return f(ctx, store)
}

// ConditionGroup passes when any member passes. Members returning ErrOutputDisabled abstain; a
// group in which every member abstains abstains too.
type ConditionGroup []IsEnabledCondition

var _ IsEnabledCondition = ConditionGroup(nil)

// Execute evaluates members in order and stops at the first pass.
func (g ConditionGroup) Execute(ctx context.Context, store domain.Store) (bool, error) {
	if len(g) == 0 {
		return true, nil
	}
	abstained := 0
	for i, condition := range g {
		if condition == nil {
			return false, configurationError("ConditionGroup.Execute", "condition %d is nil", i)
		}
		ok, err := condition.Execute(ctx, store)
		if errors.Is(err, ErrOutputDisabled) {
			abstained++
			continue
		}
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	if abstained == len(g) {
		return false, ErrOutputDisabled
	}
	return false, nil
}

// ValidateConditions rejects nil conditions, including nil members of groups.
func ValidateConditions(conditions []IsEnabledCondition) error {
	for i, condition := range conditions {
		if condition == nil {
			return configurationError("ValidateConditions", "condition %d is nil", i)
		}
		if group, ok := condition.(ConditionGroup); ok {
			if err := ValidateConditions(group); err != nil {
				return err
			}
		}
	}
	return nil
}

// ExecuteAnd passes when every condition passes or abstains. An empty list passes.
func ExecuteAnd(ctx context.Context, store domain.Store, conditions []IsEnabledCondition) (bool, error) {
	for i, condition := range conditions {
		if condition == nil {
			return false, configurationError("ExecuteAnd", "condition %d is nil", i)
		}
		ok, err := condition.Execute(ctx, store)
		if errors.Is(err, ErrOutputDisabled) {
			continue
		}
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}
