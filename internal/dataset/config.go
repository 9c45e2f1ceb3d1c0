package dataset

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is the dataset schema file expected at the dataset root.
const ConfigFileName = "data.yaml"

// expectedKptShape is the only keypoint cardinality this validator accepts:
// four corner keypoints, each carrying x, y and a visibility flag.
var expectedKptShape = []int{4, 3}

// DataConfig is the parsed data.yaml schema. Fields are pointers so that an
// absent key can be told apart from a zero value; missing fields are reported
// as errors during validation but do not stop downstream checks.
type DataConfig struct {
	Train    *string   `yaml:"train"`
	Val      *string   `yaml:"val"`
	NC       *int      `yaml:"nc"`
	Names    *[]string `yaml:"names"`
	KptShape yaml.Node `yaml:"kpt_shape"`
}

// requiredConfigFields lists the data.yaml keys a training run depends on.
var requiredConfigFields = []string{"train", "val", "nc", "names", "kpt_shape"}

// NumClasses returns the declared class count, defaulting to 1 when the nc
// field is absent so label validation can still run best-effort.
func (c *DataConfig) NumClasses() int {
	if c == nil || c.NC == nil {
		return 1
	}
	return *c.NC
}

// ClassNames returns the declared class names, or nil when absent.
func (c *DataConfig) ClassNames() []string {
	if c == nil || c.Names == nil {
		return nil
	}
	return *c.Names
}

// hasField reports whether the named data.yaml key was present.
func (c *DataConfig) hasField(name string) bool {
	switch name {
	case "train":
		return c.Train != nil
	case "val":
		return c.Val != nil
	case "nc":
		return c.NC != nil
	case "names":
		return c.Names != nil
	case "kpt_shape":
		return !c.KptShape.IsZero()
	}
	return false
}

// kptShapeValues decodes kpt_shape as a flat integer sequence. The second
// return is false when the node is present but not a sequence of integers.
func (c *DataConfig) kptShapeValues() ([]int, bool) {
	if c.KptShape.IsZero() {
		return nil, false
	}
	if c.KptShape.Kind != yaml.SequenceNode {
		return nil, false
	}
	var shape []int
	if err := c.KptShape.Decode(&shape); err != nil {
		return nil, false
	}
	return shape, true
}

func intsEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func formatInts(v []int) string {
	parts := make([]string, len(v))
	for i, n := range v {
		parts[i] = fmt.Sprintf("%d", n)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// LoadConfig locates and parses data.yaml at the dataset root. A missing or
// unparsable file is a hard gate: the error is recorded and nil is returned.
// A parsed config with missing or inconsistent fields records one diagnostic
// per problem and is still returned for best-effort downstream use.
func (v *Validator) LoadConfig() *DataConfig {
	path := v.join(ConfigFileName)
	if !v.fs.Exists(path) {
		v.addError(CategoryConfig, "missing %s", ConfigFileName)
		return nil
	}

	data, err := v.fs.ReadFile(path)
	if err != nil {
		v.addError(CategoryConfig, "failed to read %s: %v", ConfigFileName, err)
		return nil
	}

	cfg := &DataConfig{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		v.addError(CategoryConfig, "failed to parse %s: %v", ConfigFileName, err)
		return nil
	}

	for _, field := range requiredConfigFields {
		if !cfg.hasField(field) {
			v.addError(CategoryConfig, "%s missing field: %s", ConfigFileName, field)
		}
	}

	if cfg.hasField("kpt_shape") {
		shape, ok := cfg.kptShapeValues()
		switch {
		case !ok || len(shape) != 2:
			v.addError(CategoryConfig,
				"invalid kpt_shape format (expected [n_kpts, n_values])")
		case !intsEqual(shape, expectedKptShape):
			v.addError(CategoryConfig,
				"invalid kpt_shape: %s (expected %s for base corners)",
				formatInts(shape), formatInts(expectedKptShape))
		}
	}

	if cfg.NC != nil && cfg.Names != nil && *cfg.NC != len(*cfg.Names) {
		v.addError(CategoryConfig,
			"class count mismatch: nc=%d but %d names provided",
			*cfg.NC, len(*cfg.Names))
	}

	// Single-class datasets are the expected convention for this pipeline;
	// anything else is worth a look but not fatal.
	if cfg.NC == nil || *cfg.NC != 1 {
		v.addWarning(CategoryConfig,
			"multi-class detected: nc=%s (expected 1)", formatNC(cfg.NC))
	}

	return cfg
}

func formatNC(nc *int) string {
	if nc == nil {
		return "unset"
	}
	return fmt.Sprintf("%d", *nc)
}
