package contract

import (
	"fmt"
	"maps"
	"strconv"
	"strings"

	"github.com/locusproject/locus/schema"
)

// Default values for configuration.
const (
	DefaultResultLimit = 25
	MaxResultLimit     = 1000
	DefaultPrecision   = 3
	MaxPrecision       = 6
	DefaultIDColumn    = "country_code"
	DefaultMinCoverage = 0.5
	DefaultMinRows     = 1
)

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// WeightsRawInput holds raw weight definitions from the config file.
// Keys are pillar ids and criterion codes as declared in the hierarchy
// definition; values are raw weights on any non-negative scale. Keys that
// match nothing in the hierarchy are ignored at scoring time.
type WeightsRawInput struct {
	Pillars  map[string]float64            `mapstructure:"pillars"`
	Criteria map[string]map[string]float64 `mapstructure:"criteria"`
}

// Config holds the runtime configuration for a comparison run.
// This struct remains the "final, validated" config.
type Config struct {
	HierarchyPath string
	DataPath      string
	NamesPath     string
	IDColumn      string

	ResultLimit int
	Strict      bool
	StrictSet   bool // Whether strict came from an explicit value rather than the default
	Detail      bool
	Explain     bool
	Precision   int
	Output      schema.OutputMode
	OutputFile  string
	Width       int // Terminal width override (0 = auto-detect)

	// Selection lists from flags; the full inclusion maps are built once
	// the hierarchy and table universes are known.
	IncludeCriteria []string
	ExcludeCriteria []string
	IncludeEntities []string
	ExcludeEntities []string

	// Selection holds inclusion maps merged from a saved session. Axes
	// covered by the lists above take precedence over these.
	Selection schema.Selection

	// Raw weights keyed by pillar id, and by pillar id then criterion code.
	// Never normalized here; the engine normalizes per scope on every run.
	PillarWeightsRaw    map[string]float64
	CriterionWeightsRaw map[string]map[string]float64

	SessionKey string // Saved session id or name to merge into this run

	StoreBackend   schema.DatabaseBackend
	StoreDBConnect string // Please use env var as this is plaintext

	MinCoverage float64 // Data gate: required per-criterion coverage fraction
	MinRows     int     // Data gate: required surviving row count

	UseEmojis bool // Enable emojis in output headers
	UseColors bool // Enable colored labels in table output
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	DataPathStr string

	// --- Fields from rootCmd.PersistentFlags() ---
	Hierarchy      string `mapstructure:"hierarchy"`
	Data           string `mapstructure:"data"`
	Names          string `mapstructure:"names"`
	IDColumn       string `mapstructure:"id-column"`
	Limit          int    `mapstructure:"limit"`
	Strict         string `mapstructure:"strict"`
	Detail         bool   `mapstructure:"detail"`
	Precision      int    `mapstructure:"precision"`
	Output         string `mapstructure:"output"`
	OutputFile     string `mapstructure:"output-file"`
	Width          int    `mapstructure:"width"`
	Session        string `mapstructure:"session"`
	StoreBackend   string `mapstructure:"store-backend"`
	StoreDBConnect string `mapstructure:"store-db-connect"`
	Emoji          string `mapstructure:"emoji"`
	Color          string `mapstructure:"color"`

	// --- Selection and weight fields from rootCmd.PersistentFlags() ---
	Criteria            string `mapstructure:"criteria"`
	ExcludeCriteria     string `mapstructure:"exclude-criteria"`
	Entities            string `mapstructure:"entities"`
	ExcludeEntities     string `mapstructure:"exclude-entities"`
	PillarWeightsStr    string `mapstructure:"pillar-weights"`
	CriterionWeightsStr string `mapstructure:"criterion-weights"`

	// --- Fields from rankCmd.Flags() ---
	Explain bool `mapstructure:"explain"`

	// --- Fields from checkCmd.Flags() ---
	MinCoverage float64 `mapstructure:"min-coverage"`
	MinRows     int     `mapstructure:"min-rows"`

	// --- Raw weights from config file ---
	Weights WeightsRawInput `mapstructure:"weights"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	clone.IncludeCriteria = cloneList(c.IncludeCriteria)
	clone.ExcludeCriteria = cloneList(c.ExcludeCriteria)
	clone.IncludeEntities = cloneList(c.IncludeEntities)
	clone.ExcludeEntities = cloneList(c.ExcludeEntities)
	clone.Selection = c.Selection.Clone()
	clone.PillarWeightsRaw = maps.Clone(c.PillarWeightsRaw)
	if c.CriterionWeightsRaw != nil {
		clone.CriterionWeightsRaw = make(map[string]map[string]float64, len(c.CriterionWeightsRaw))
		for pillar, byCode := range c.CriterionWeightsRaw {
			clone.CriterionWeightsRaw[pillar] = maps.Clone(byCode)
		}
	}
	return &clone
}

func cloneList(list []string) []string {
	if list == nil {
		return nil
	}
	out := make([]string, len(list))
	copy(out, list)
	return out
}

// ApplySession merges a saved session into the config. Explicit inputs win:
// a selection axis covered by flags keeps the flag lists, weights given via
// flags or config file keep their values, and strict only follows the
// session when it was not set for this invocation.
func (c *Config) ApplySession(payload schema.SessionPayload) {
	if c.Selection.Criteria == nil && len(c.IncludeCriteria) == 0 && len(c.ExcludeCriteria) == 0 {
		c.Selection.Criteria = maps.Clone(payload.Criteria)
	}
	if c.Selection.Entities == nil && len(c.IncludeEntities) == 0 && len(c.ExcludeEntities) == 0 {
		c.Selection.Entities = maps.Clone(payload.Entities)
	}
	if len(c.PillarWeightsRaw) == 0 && len(payload.PillarWeights) > 0 {
		c.PillarWeightsRaw = maps.Clone(payload.PillarWeights)
	}
	if len(c.CriterionWeightsRaw) == 0 && len(payload.CriterionWeights) > 0 {
		c.CriterionWeightsRaw = make(map[string]map[string]float64, len(payload.CriterionWeights))
		for pillar, byCode := range payload.CriterionWeights {
			c.CriterionWeightsRaw[pillar] = maps.Clone(byCode)
		}
	}
	if !c.StrictSet && payload.Strict != nil {
		c.Strict = *payload.Strict
	}
}

// SessionPayload captures the config's current inputs for persistence.
func (c *Config) SessionPayload() schema.SessionPayload {
	payload := schema.SessionPayload{
		Criteria:      maps.Clone(c.Selection.Criteria),
		Entities:      maps.Clone(c.Selection.Entities),
		PillarWeights: maps.Clone(c.PillarWeightsRaw),
	}
	if c.CriterionWeightsRaw != nil {
		payload.CriterionWeights = make(map[string]map[string]float64, len(c.CriterionWeightsRaw))
		for pillar, byCode := range c.CriterionWeightsRaw {
			payload.CriterionWeights[pillar] = maps.Clone(byCode)
		}
	}
	if c.StrictSet {
		strict := c.Strict
		payload.Strict = &strict
	}
	return payload
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfigs(cfg, input); err != nil {
		return err
	}
	if err := processSelectionLists(cfg, input); err != nil {
		return err
	}
	if err := processWeights(cfg, input); err != nil {
		return err
	}
	if err := processCheckGate(cfg, input); err != nil {
		return err
	}
	return nil
}

// ValidateDatabaseConnectionString validates the format of database
// connection strings for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateSimpleInputs processes and validates all non-weight fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.NamesPath = strings.TrimSpace(input.Names)
	cfg.OutputFile = input.OutputFile
	cfg.Detail = input.Detail
	cfg.Explain = input.Explain
	cfg.Width = input.Width
	cfg.SessionKey = strings.TrimSpace(input.Session)

	// --- 1. Input Path Resolution ---
	// A positional data path takes precedence over the --data flag.
	cfg.DataPath = strings.TrimSpace(input.DataPathStr)
	if cfg.DataPath == "" {
		cfg.DataPath = strings.TrimSpace(input.Data)
	}
	cfg.HierarchyPath = strings.TrimSpace(input.Hierarchy)
	if cfg.HierarchyPath == "" {
		return fmt.Errorf("hierarchy definition path is required (set --hierarchy or the hierarchy config key)")
	}

	cfg.IDColumn = strings.TrimSpace(input.IDColumn)
	if cfg.IDColumn == "" {
		cfg.IDColumn = DefaultIDColumn
	}

	// --- 2. ResultLimit Validation ---
	if input.Limit <= 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", MaxResultLimit, input.Limit)
	}
	cfg.ResultLimit = input.Limit

	// --- 3. Strict Mode ---
	// An empty value keeps the row-drop default and stays overridable by a
	// saved session.
	if input.Strict == "" {
		cfg.Strict = true
		cfg.StrictSet = false
	} else {
		strict, err := ParseBoolString(input.Strict)
		if err != nil {
			return fmt.Errorf("invalid --strict value: %w", err)
		}
		cfg.Strict = strict
		cfg.StrictSet = true
	}

	// Parse emoji flag
	emojis, err := ParseBoolString(input.Emoji)
	if err != nil {
		return fmt.Errorf("invalid --emoji value: %w", err)
	}
	cfg.UseEmojis = emojis

	// Parse color flag
	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 4. Precision and Output Validation ---
	if input.Precision < 1 || input.Precision > MaxPrecision {
		return fmt.Errorf("precision must be between 1 and %d (received %d)", MaxPrecision, input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", cfg.Output)
	}

	return nil
}

// validateBackendConfigs validates the session store backend configuration.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	cfg.StoreBackend = schema.DatabaseBackend(strings.ToLower(input.StoreBackend))
	if _, ok := schema.ValidStoreBackends[cfg.StoreBackend]; !ok {
		return fmt.Errorf("invalid store backend '%s'. must be sqlite, mysql, postgresql, none", input.StoreBackend)
	}
	cfg.StoreDBConnect = input.StoreDBConnect
	return ValidateDatabaseConnectionString(cfg.StoreBackend, cfg.StoreDBConnect)
}

// processSelectionLists parses the inclusion and exclusion flag lists.
func processSelectionLists(cfg *Config, input *ConfigRawInput) error {
	cfg.IncludeCriteria = SplitList(input.Criteria)
	cfg.ExcludeCriteria = SplitList(input.ExcludeCriteria)
	cfg.IncludeEntities = SplitList(input.Entities)
	cfg.ExcludeEntities = SplitList(input.ExcludeEntities)

	if overlap := listOverlap(cfg.IncludeCriteria, cfg.ExcludeCriteria); overlap != "" {
		return fmt.Errorf("criterion %q appears in both --criteria and --exclude-criteria", overlap)
	}
	if overlap := listOverlap(cfg.IncludeEntities, cfg.ExcludeEntities); overlap != "" {
		return fmt.Errorf("entity %q appears in both --entities and --exclude-entities", overlap)
	}
	return nil
}

// listOverlap returns the first entry present in both lists.
func listOverlap(include, exclude []string) string {
	if len(include) == 0 || len(exclude) == 0 {
		return ""
	}
	set := make(map[string]struct{}, len(include))
	for _, entry := range include {
		set[entry] = struct{}{}
	}
	for _, entry := range exclude {
		if _, ok := set[entry]; ok {
			return entry
		}
	}
	return ""
}

// processWeights merges raw weights from the config file with flag
// overrides and re-validates non-negativity. Sums are never validated;
// normalization handles any positive scale.
func processWeights(cfg *Config, input *ConfigRawInput) error {
	pillars := maps.Clone(input.Weights.Pillars)
	if pillars == nil {
		pillars = make(map[string]float64)
	}

	if input.PillarWeightsStr != "" {
		parsed, err := parseWeightsString(input.PillarWeightsStr)
		if err != nil {
			return fmt.Errorf("invalid --pillar-weights format: %w", err)
		}
		maps.Copy(pillars, parsed)
	}

	criteria := make(map[string]map[string]float64, len(input.Weights.Criteria))
	for pillar, byCode := range input.Weights.Criteria {
		criteria[pillar] = maps.Clone(byCode)
	}

	if input.CriterionWeightsStr != "" {
		parsed, err := parseNestedWeightsString(input.CriterionWeightsStr)
		if err != nil {
			return fmt.Errorf("invalid --criterion-weights format: %w", err)
		}
		for pillar, byCode := range parsed {
			if criteria[pillar] == nil {
				criteria[pillar] = make(map[string]float64, len(byCode))
			}
			maps.Copy(criteria[pillar], byCode)
		}
	}

	// Re-validate non-negativity at this boundary; the interactive layers
	// already prevent negative values.
	if err := validatePillarWeights(pillars); err != nil {
		return err
	}
	if err := validateCriterionWeights(criteria); err != nil {
		return err
	}

	if len(pillars) > 0 {
		cfg.PillarWeightsRaw = pillars
	}
	if len(criteria) > 0 {
		cfg.CriterionWeightsRaw = criteria
	}
	return nil
}

// processCheckGate validates the data health thresholds.
func processCheckGate(cfg *Config, input *ConfigRawInput) error {
	if input.MinCoverage < 0 || input.MinCoverage > 1 {
		return fmt.Errorf("min-coverage must be between 0.0 and 1.0 (received %v)", input.MinCoverage)
	}
	cfg.MinCoverage = input.MinCoverage

	if input.MinRows < 0 {
		return fmt.Errorf("min-rows must not be negative (received %d)", input.MinRows)
	}
	cfg.MinRows = input.MinRows
	return nil
}

// RevalidateWeights applies weight override strings outside the flag
// pipeline, where ProcessAndValidate already ran on the base config. MCP
// tool calls hit this path. Each given scope replaces the base values.
func RevalidateWeights(cfg *Config, pillarStr, criterionStr string) error {
	if pillarStr != "" {
		parsed, err := parseWeightsString(pillarStr)
		if err != nil {
			return fmt.Errorf("invalid pillar-weights format: %w", err)
		}
		if err := validatePillarWeights(parsed); err != nil {
			return err
		}
		cfg.PillarWeightsRaw = parsed
	}
	if criterionStr != "" {
		parsed, err := parseNestedWeightsString(criterionStr)
		if err != nil {
			return fmt.Errorf("invalid criterion-weights format: %w", err)
		}
		if err := validateCriterionWeights(parsed); err != nil {
			return err
		}
		cfg.CriterionWeightsRaw = parsed
	}
	return nil
}

// RevalidateCheckGate applies data gate thresholds outside the flag pipeline.
func RevalidateCheckGate(cfg *Config, minCoverage float64, minRows int) error {
	if minCoverage < 0 || minCoverage > 1 {
		return fmt.Errorf("min-coverage must be between 0.0 and 1.0 (received %v)", minCoverage)
	}
	cfg.MinCoverage = minCoverage

	if minRows < 0 {
		return fmt.Errorf("min-rows must not be negative (received %d)", minRows)
	}
	cfg.MinRows = minRows
	return nil
}

// ProcessProfilingConfig handles the profiling flag and sets up profiling configuration.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) error {
	if profilePrefix != "" {
		profile.Enabled = true
		profile.Prefix = profilePrefix
	}
	return nil
}

func validatePillarWeights(pillars map[string]float64) error {
	for pillar, raw := range pillars {
		if raw < 0 {
			return fmt.Errorf("pillar weight for %q must not be negative (received %v)", pillar, raw)
		}
	}
	return nil
}

func validateCriterionWeights(criteria map[string]map[string]float64) error {
	for pillar, byCode := range criteria {
		for code, raw := range byCode {
			if raw < 0 {
				return fmt.Errorf("criterion weight for %q in pillar %q must not be negative (received %v)", code, pillar, raw)
			}
		}
	}
	return nil
}

// parseWeightsString parses a string like "env:2,econ:1" into a map of
// key to raw weight.
func parseWeightsString(s string) (map[string]float64, error) {
	weights := make(map[string]float64)

	for part := range strings.SplitSeq(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		keyValue := strings.Split(part, ":")
		if len(keyValue) != 2 {
			return nil, fmt.Errorf("invalid weight format '%s', expected 'key:value'", part)
		}

		key := strings.TrimSpace(keyValue[0])
		if key == "" {
			return nil, fmt.Errorf("empty weight key in '%s'", part)
		}

		value, err := strconv.ParseFloat(strings.TrimSpace(keyValue[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid weight value '%s' for key %s: %w", keyValue[1], key, err)
		}

		weights[key] = value
	}

	return weights, nil
}

// parseNestedWeightsString parses a string like "env.co2_pc:0.5,env.ren:0.5"
// into a map of pillar id to criterion code to raw weight.
func parseNestedWeightsString(s string) (map[string]map[string]float64, error) {
	flat, err := parseWeightsString(s)
	if err != nil {
		return nil, err
	}

	nested := make(map[string]map[string]float64)
	for key, value := range flat {
		pillar, code, ok := strings.Cut(key, ".")
		if !ok || pillar == "" || code == "" {
			return nil, fmt.Errorf("invalid criterion weight key '%s', expected 'pillar.code'", key)
		}
		if nested[pillar] == nil {
			nested[pillar] = make(map[string]float64)
		}
		nested[pillar][code] = value
	}
	return nested, nil
}
