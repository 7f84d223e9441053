package config

// KnobType mirrors the teacher's ParamType enum (pkg/cli/meta.go) used to
// describe parameters for UI/validation purposes without reflection.
type KnobType string

const (
	KnobInt     KnobType = "int"
	KnobFloat   KnobType = "float"
	KnobBool    KnobType = "bool"
	KnobString  KnobType = "string"
	KnobEnum    KnobType = "enum"
)

// KnobSpec declares one configuration field's shape: its type, valid
// range, default, and (for enums) the accepted values. The CLI
// collaborator's -set parsing looks knobs up here; Validate keeps its own
// range checks in validate.go and does not read this registry.
type KnobSpec struct {
	Name        string
	Type        KnobType
	Min, Max    *float64
	EnumOptions []string
	Default     string
	Description string
}

func f(v float64) *float64 { return &v }

// Knobs lists the Config fields that can be set by name; it covers a
// subset of the fields of the Config struct in config.go, not all of them.
var Knobs = []KnobSpec{
	{Name: "backend", Type: KnobEnum, EnumOptions: []string{"edge", "centerline", "superpixel", "dots"}, Default: "edge", Description: "top-level vectorization algorithm"},
	{Name: "detail", Type: KnobFloat, Min: f(0), Max: f(1), Default: "0.4", Description: "master slider driving downstream thresholds"},
	{Name: "stroke_width", Type: KnobFloat, Min: f(0), Default: "1.2", Description: "stroke width in px at 1080p"},
	{Name: "background_removal_strength", Type: KnobFloat, Min: f(0), Max: f(1), Default: "0.5"},
	{Name: "adaptive_threshold_window_size", Type: KnobInt, Min: f(15), Max: f(45), Default: "31", Description: "must be odd"},
	{Name: "adaptive_threshold_k", Type: KnobFloat, Min: f(0.1), Max: f(0.9), Default: "0.4"},
	{Name: "min_branch_length", Type: KnobFloat, Min: f(0), Default: "8.0"},
	{Name: "douglas_peucker_epsilon", Type: KnobFloat, Min: f(0), Default: "0", Description: "0 means compute from detail"},
	{Name: "compactness", Type: KnobFloat, Min: f(5), Max: f(30), Default: "10"},
	{Name: "slic_iterations", Type: KnobInt, Min: f(1), Default: "10"},
	{Name: "superpixel_initialization_pattern", Type: KnobEnum, EnumOptions: []string{"square", "hexagonal", "poisson"}, Default: "hexagonal"},
	{Name: "dot_min_radius", Type: KnobFloat, Min: f(0), Default: "1.0"},
	{Name: "dot_max_radius", Type: KnobFloat, Min: f(0), Default: "4.0"},
	{Name: "background_tolerance", Type: KnobFloat, Min: f(0), Default: "8.0"},
	{Name: "hand_drawn_preset", Type: KnobEnum, EnumOptions: []string{"none", "subtle", "medium", "strong", "sketchy"}, Default: "none"},
	{Name: "tremor_strength", Type: KnobFloat, Min: f(0), Max: f(0.5), Default: "0"},
	{Name: "variable_weights", Type: KnobFloat, Min: f(0), Max: f(1), Default: "0"},
	{Name: "tapering", Type: KnobFloat, Min: f(0), Max: f(1), Default: "0"},
	{Name: "svg_precision", Type: KnobInt, Min: f(0), Max: f(6), Default: "2"},
	{Name: "max_processing_time_ms", Type: KnobInt, Min: f(0), Default: "0", Description: "0 = unlimited"},
	{Name: "thread_count", Type: KnobInt, Min: f(0), Default: "0", Description: "0 = auto"},
	{Name: "max_image_size", Type: KnobInt, Min: f(1), Default: "4096"},
	{Name: "seed", Type: KnobInt, Min: f(0), Default: "0"},
}

// Lookup returns the KnobSpec for name, or nil if unknown.
func Lookup(name string) *KnobSpec {
	for i := range Knobs {
		if Knobs[i].Name == name {
			return &Knobs[i]
		}
	}
	return nil
}
