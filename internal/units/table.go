// Package units holds the per-unit precision policies, the SI conversion
// chain, magnitude normalization and angle sector rounding.
package units

import (
	"sort"

	"github.com/ethpandaops/sensor-round/internal/reading"
	"github.com/ethpandaops/sensor-round/internal/sigfig"
	"github.com/sirupsen/logrus"
)

// DefaultPrecision applies to units without a policy.
const DefaultPrecision = 3

// Step converts From into To as (v + Offset) * Factor.
type Step struct {
	From   string
	To     string
	Factor float64
	Offset float64
}

// Apply converts a measurement expressed in s.From.
func (s Step) Apply(m reading.Measurement) reading.Measurement {
	return m.WithValue((m.Value + s.Offset) * s.Factor).WithUnit(s.To)
}

// Table maps unit symbols to policies and conversion steps.
// It is read-only once built and safe for concurrent Resolve calls.
type Table struct {
	log              logrus.FieldLogger
	policies         map[string]Policy
	steps            map[string]Step
	folds            map[string]fold
	defaultPrecision float64
}

// fold is the family base a prefixed unit rewrites to.
type fold struct {
	base string
	exp  int
}

// NewTable returns a table seeded with the built-in policies and steps.
// defaultPrecision <= 0 selects DefaultPrecision.
func NewTable(log logrus.FieldLogger, defaultPrecision float64) *Table {
	if defaultPrecision <= 0 {
		defaultPrecision = DefaultPrecision
	}

	t := &Table{
		log:              log.WithField("component", "units.table"),
		policies:         make(map[string]Policy, len(builtinPolicies)),
		steps:            make(map[string]Step, len(builtinSteps)),
		folds:            make(map[string]fold),
		defaultPrecision: defaultPrecision,
	}

	for _, p := range builtinPolicies {
		t.policies[p.Unit] = p
		t.indexFamily(p)
	}

	for _, s := range builtinSteps {
		t.steps[s.From] = s
	}

	return t
}

// Add registers or replaces a policy. Call before the table is shared.
func (t *Table) Add(p Policy) {
	if _, exists := t.policies[p.Unit]; exists {
		t.log.WithField("unit", p.Unit).Debug("overriding built-in policy")
	}
	t.policies[p.Unit] = p
	t.indexFamily(p)
}

// indexFamily registers the prefixed units of p's family for Fold. A unit
// already claimed by another family is taken over by the later policy.
func (t *Table) indexFamily(p Policy) {
	if p.Family == nil {
		return
	}

	for unit, exp := range p.Family.Prefixed() {
		if prev, ok := t.folds[unit]; ok && prev.base != p.Family.Base {
			t.log.WithFields(logrus.Fields{
				"unit":     unit,
				"previous": prev.base,
				"base":     p.Family.Base,
			}).Warn("prefixed unit claimed by two families, later policy wins")
		}
		t.folds[unit] = fold{base: p.Family.Base, exp: exp}
	}
}

// Lookup returns the policy for an exact unit symbol.
func (t *Table) Lookup(unit string) (Policy, bool) {
	p, ok := t.policies[unit]
	return p, ok
}

// DefaultPrecision returns the precision applied to unknown units.
func (t *Table) DefaultPrecision() float64 {
	return t.defaultPrecision
}

// Convert applies the SI conversion chain, one step at a time, until the unit
// has no further step (yd→ft→in→cm→mm).
func (t *Table) Convert(m reading.Measurement) reading.Measurement {
	for range len(t.steps) {
		step, ok := t.steps[m.Unit]
		if !ok {
			break
		}
		m = step.Apply(m)
	}
	return m
}

// Fold rewrites a prefixed unit of a known family ("kW", "mA") into the
// family's base unit so the normalizer can pick the display prefix again.
func (t *Table) Fold(m reading.Measurement) reading.Measurement {
	if _, ok := t.policies[m.Unit]; ok {
		return m
	}

	f, ok := t.folds[m.Unit]
	if !ok {
		return m
	}

	return m.WithValue(sigfig.Shift(m.Value, f.exp)).WithUnit(f.base)
}

// Resolve converts (when si is set), folds prefixes and evaluates the policy
// of the resulting unit. known is false when no policy matched; the directive
// then carries the default precision.
func (t *Table) Resolve(m reading.Measurement, si bool) (reading.Measurement, Directive, bool) {
	if si {
		m = t.Convert(m)
	}
	m = t.Fold(m)

	p, ok := t.policies[m.Unit]
	if !ok {
		return m, Directive{SignificantFigures: t.defaultPrecision}, false
	}

	return m, p.Directive(m.Value), true
}

// Target returns the unit the SI chain ends at for unit, or unit itself.
func (t *Table) Target(unit string) string {
	m := t.Convert(reading.Measurement{Unit: unit})
	return m.Unit
}

// Policies returns all policies sorted by unit symbol.
func (t *Table) Policies() []Policy {
	out := make([]Policy, 0, len(t.policies))
	for _, p := range t.policies {
		out = append(out, p)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Unit < out[j].Unit })

	return out
}
