package units

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

var (
	errPrecisionRequired   = errors.New("policy needs exactly one of precision, decimals or scale")
	errBumpShape           = errors.New("bump needs either center/half or min/max")
	errBumpAddRequired     = errors.New("bump add must be positive")
	errPrefixesMissingBase = errors.New("prefixes must include the empty prefix")
)

// policyFile is the YAML layout of a policy override file:
//
//	units:
//	  ppm:
//	    decimals: 0
//	    bumps:
//	      - {center: 420, half: 30, add: 0.5}
//	  VA:
//	    precision: 3
//	    prefixes: ["m", "", "k", "M"]
type policyFile struct {
	Units map[string]*policyEntry `yaml:"units"`
}

type policyEntry struct {
	Label     string      `yaml:"label"`
	Precision *float64    `yaml:"precision"`
	Decimals  *float64    `yaml:"decimals"`
	Scale     *int        `yaml:"scale"`
	Prefixes  []string    `yaml:"prefixes"`
	Angle     bool        `yaml:"angle"`
	Bumps     []bumpEntry `yaml:"bumps"`
}

type bumpEntry struct {
	Center *float64 `yaml:"center"`
	Half   float64  `yaml:"half"`
	Min    *float64 `yaml:"min"`
	Max    *float64 `yaml:"max"`
	Add    float64  `yaml:"add"`
}

// LoadPolicyFile reads policies from a YAML file and registers them on t,
// replacing built-ins with the same unit symbol.
func (t *Table) LoadPolicyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading policy file: %w", err)
	}

	policies, err := ParsePolicies(data)
	if err != nil {
		return fmt.Errorf("parsing policy file %s: %w", path, err)
	}

	for _, p := range policies {
		t.Add(p)
	}

	t.log.WithFields(logrus.Fields{
		"path":  path,
		"count": len(policies),
	}).Debug("loaded policy file")

	return nil
}

// ParsePolicies decodes and validates a policy document. Policies are
// returned sorted by unit symbol.
func ParsePolicies(data []byte) ([]Policy, error) {
	var doc policyFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing yaml: %w", err)
	}

	policies := make([]Policy, 0, len(doc.Units))

	for unit, entry := range doc.Units {
		if entry == nil {
			return nil, fmt.Errorf("%w: %s", errPrecisionRequired, unit)
		}

		p, err := entry.policy(unit)
		if err != nil {
			return nil, err
		}

		policies = append(policies, p)
	}

	sort.Slice(policies, func(i, j int) bool { return policies[i].Unit < policies[j].Unit })

	return policies, nil
}

func (e *policyEntry) policy(unit string) (Policy, error) {
	p := Policy{
		Unit:  unit,
		Label: e.Label,
		Scale: e.Scale,
		Angle: e.Angle,
	}

	set := 0
	if e.Precision != nil {
		p.Precision = Fixed(*e.Precision)
		set++
	}
	if e.Decimals != nil {
		p.Precision = Decimals(*e.Decimals)
		set++
	}
	if e.Scale != nil && set == 0 {
		p.Precision = Fixed(DefaultPrecision)
		set++
	}
	if set != 1 {
		return Policy{}, fmt.Errorf("%w: %s", errPrecisionRequired, unit)
	}

	if len(e.Prefixes) > 0 {
		fam := &Family{Base: unit, Prefixes: e.Prefixes}
		if fam.Unprefixed() < 0 {
			return Policy{}, fmt.Errorf("%w: %s", errPrefixesMissingBase, unit)
		}
		p.Family = fam
	}

	for i, b := range e.Bumps {
		if b.Add <= 0 {
			return Policy{}, fmt.Errorf("%w: %s bump %d", errBumpAddRequired, unit, i)
		}

		switch {
		case b.Center != nil && b.Min == nil && b.Max == nil:
			p.Bumps = append(p.Bumps, Within(*b.Center, b.Half, b.Add))
		case b.Center == nil && b.Min != nil && b.Max != nil:
			p.Bumps = append(p.Bumps, Between(*b.Min, *b.Max, b.Add))
		default:
			return Policy{}, fmt.Errorf("%w: %s bump %d", errBumpShape, unit, i)
		}
	}

	return p, nil
}
