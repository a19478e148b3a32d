// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 xacmlgo Contributors

package policy

import (
	"context"
	"sort"

	"github.com/Masterminds/semver/v3"

	"github.com/xacmlgo/pdp/internal/pdp/combine"
	"github.com/xacmlgo/pdp/internal/pdp/expr"
	"github.com/xacmlgo/pdp/internal/pdp/result"
	"github.com/xacmlgo/pdp/internal/pdp/target"
)

// RefType distinguishes a PolicyIdReference from a PolicySetIdReference.
type RefType int

const (
	RefPolicy RefType = iota
	RefPolicySet
)

// ConstraintKind is one of the three version-constraint flavours spec
// §4.H allows on a policy reference.
type ConstraintKind int

const (
	ConstraintExact ConstraintKind = iota
	ConstraintEarliest
	ConstraintLatest
)

// VersionConstraint pairs a kind with the version string it applies
// to: an exact version match, or a minimum ("earliest") / maximum
// ("latest") bound.
type VersionConstraint struct {
	Kind    ConstraintKind
	Version string
}

// ResolveVersion picks the version satisfying c out of available,
// using Masterminds/semver for comparison. It returns an error if no
// version satisfies the constraint, or if a version string fails to
// parse as semver.
func ResolveVersion(c VersionConstraint, available []string) (string, error) {
	if len(available) == 0 {
		return "", errNoVersions
	}

	parsed := make([]*semver.Version, 0, len(available))
	byVersion := make(map[*semver.Version]string, len(available))
	for _, v := range available {
		sv, err := semver.NewVersion(v)
		if err != nil {
			return "", err
		}
		parsed = append(parsed, sv)
		byVersion[sv] = v
	}
	sort.Slice(parsed, func(i, j int) bool { return parsed[i].LessThan(parsed[j]) })

	switch c.Kind {
	case ConstraintExact:
		want, err := semver.NewVersion(c.Version)
		if err != nil {
			return "", err
		}
		for _, sv := range parsed {
			if sv.Equal(want) {
				return byVersion[sv], nil
			}
		}
		return "", errNoMatchingVersion
	case ConstraintEarliest:
		floor, err := semver.NewVersion(c.Version)
		if err != nil {
			return "", err
		}
		for _, sv := range parsed {
			if !sv.LessThan(floor) {
				return byVersion[sv], nil
			}
		}
		return "", errNoMatchingVersion
	case ConstraintLatest:
		ceiling, err := semver.NewVersion(c.Version)
		if err != nil {
			return "", err
		}
		for i := len(parsed) - 1; i >= 0; i-- {
			if !parsed[i].GreaterThan(ceiling) {
				return byVersion[parsed[i]], nil
			}
		}
		return "", errNoMatchingVersion
	default:
		return byVersion[parsed[len(parsed)-1]], nil
	}
}

type resolveError string

func (e resolveError) Error() string { return string(e) }

const (
	errNoVersions        = resolveError("no versions available")
	errNoMatchingVersion = resolveError("no version satisfies constraint")
)

// Provider resolves a PolicyIdReference/PolicySetIdReference to a
// combine.Child, per spec §6's "findByReference(id, versionConstraints,
// refType) -> ... | None".
type Provider interface {
	FindByReference(goCtx context.Context, id string, constraint VersionConstraint, refType RefType) (combine.Child, error)
}

// Reference is an unresolved PolicyIdReference/PolicySetIdReference
// node. It resolves lazily against Provider on every
// EvaluateTarget/Evaluate call; an unresolvable reference yields a
// processing-error Indeterminate rather than a Go error, consistent
// with every other evaluator boundary in this package (spec §7).
type Reference struct {
	ID         string
	Constraint VersionConstraint
	RefType    RefType
	Provider   Provider
}

func (ref Reference) resolve(goCtx context.Context) (combine.Child, *result.Status) {
	child, err := ref.Provider.FindByReference(goCtx, ref.ID, ref.Constraint, ref.RefType)
	if err != nil || child == nil {
		msg := "unresolvable policy reference: " + ref.ID
		if err != nil {
			msg += ": " + err.Error()
		}
		st := result.Processing(msg)
		return nil, &st
	}
	return child, nil
}

func (ref Reference) EvaluateTarget(goCtx context.Context, ectx *expr.EvalContext) target.MatchResult {
	child, st := ref.resolve(goCtx)
	if st != nil {
		return target.MatchResult{Outcome: target.Indeterminate, Status: *st}
	}
	return child.EvaluateTarget(goCtx, ectx)
}

func (ref Reference) Evaluate(goCtx context.Context, ectx *expr.EvalContext) result.DecisionResult {
	child, st := ref.resolve(goCtx)
	if st != nil {
		return result.Indeterminate(result.IndeterminateDP, *st)
	}
	return child.Evaluate(goCtx, ectx)
}
