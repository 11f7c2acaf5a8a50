// Package scenario defines evaluation test cases: a recorded sequence of
// filesystem events paired with the operations a correct detector should
// report for it.
package scenario

import (
	"github.com/opdetect/opqa/internal/detector"
	"github.com/opdetect/opqa/internal/errors"
)

// ExpectedOperation names one operation a correct detector should report.
// A scenario may expect the same type more than once; duplicates count
// separately.
type ExpectedOperation struct {
	Type string `json:"type" yaml:"type"`
}

// Scenario is a single evaluation case.
type Scenario struct {
	ID          string              `json:"id,omitempty" yaml:"id,omitempty"`
	Name        string              `json:"name" yaml:"name"`
	Description string              `json:"description,omitempty" yaml:"description,omitempty"`
	Events      []detector.Event    `json:"events" yaml:"events"`
	Expected    []ExpectedOperation `json:"expected_operations" yaml:"expected_operations"`
}

// Suite is a named collection of scenarios, typically loaded from one file.
type Suite struct {
	Name        string     `json:"name" yaml:"name"`
	Description string     `json:"description,omitempty" yaml:"description,omitempty"`
	Scenarios   []Scenario `json:"scenarios" yaml:"scenarios"`
}

// Validate checks a scenario against the known event and operation
// vocabularies.
func (s *Scenario) Validate() error {
	if s.Name == "" {
		return errors.Validation("scenario missing name")
	}

	for _, ev := range s.Events {
		if !knownEventOp(ev.Op) {
			return errors.Newf(errors.ErrorTypeValidation,
				"scenario %q: unknown event op %q", s.Name, ev.Op)
		}
		if ev.Path == "" {
			return errors.Newf(errors.ErrorTypeValidation,
				"scenario %q: event with empty path", s.Name)
		}
	}

	for _, exp := range s.Expected {
		if !knownOperationType(exp.Type) {
			return errors.Newf(errors.ErrorTypeValidation,
				"scenario %q: unknown expected operation type %q", s.Name, exp.Type)
		}
	}

	return nil
}

// Validate checks every scenario in the suite.
func (s *Suite) Validate() error {
	if s.Name == "" {
		return errors.Validation("suite missing name")
	}
	if len(s.Scenarios) == 0 {
		return errors.Newf(errors.ErrorTypeValidation, "suite %q has no scenarios", s.Name)
	}

	for i := range s.Scenarios {
		if err := s.Scenarios[i].Validate(); err != nil {
			return err
		}
	}

	return nil
}

func knownEventOp(op detector.EventOp) bool {
	for _, known := range detector.KnownEventOps() {
		if op == known {
			return true
		}
	}
	return false
}

func knownOperationType(typ string) bool {
	for _, known := range detector.KnownOperationTypes() {
		if typ == string(known) {
			return true
		}
	}
	return false
}
