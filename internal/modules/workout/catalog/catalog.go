package catalog

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"gopkg.in/yaml.v3"

	"github.com/yungbote/trainwise-backend/internal/platform/logger"
)

// CatalogPathEnv points at a YAML file that replaces the embedded tables.
const CatalogPathEnv = "WORKOUT_CATALOG_YAML"

//go:embed catalog.yaml
var catalogFS embed.FS

type EquipmentPattern struct {
	Pattern   string `yaml:"pattern"`
	Equipment string `yaml:"equipment"`
}

type MovementPattern struct {
	Pattern  string   `yaml:"pattern"`
	Keywords []string `yaml:"keywords"`
}

type ClassKeywords struct {
	Isolation     []string `yaml:"isolation"`
	CompoundLower []string `yaml:"compound_lower"`
	CompoundUpper []string `yaml:"compound_upper"`
}

// Catalog holds every static keyword table used by the selection engine.
type Catalog struct {
	Version            int                 `yaml:"version"`
	EquipmentPatterns  []EquipmentPattern  `yaml:"equipment_patterns"`
	EquipmentSets      map[string][]string `yaml:"equipment_sets"`
	ImplicitEquipment  []string            `yaml:"implicit_equipment"`
	FillerWords        []string            `yaml:"filler_words"`
	MovementPatterns   []MovementPattern   `yaml:"movement_patterns"`
	Contraindications  map[string][]string `yaml:"contraindications"`
	FocusAreas         map[string]string   `yaml:"focus_areas"`
	LevelPhrases       map[string]string   `yaml:"level_phrases"`
	Goals              map[string]string   `yaml:"goals"`
	WorkoutTypes       map[string][]string `yaml:"workout_types"`
	UnilateralKeywords []string            `yaml:"unilateral_keywords"`
	SingleUnitKeywords []string            `yaml:"single_unit_keywords"`
	UnitFamilies       []string            `yaml:"unit_families"`
	DifficultyLabels   map[string]int      `yaml:"difficulty_labels"`
	Classes            ClassKeywords       `yaml:"classes"`
	LowMoods           []string            `yaml:"low_moods"`

	fillerSet map[string]struct{}
}

var (
	embeddedOnce sync.Once
	embedded     *Catalog
	installed    atomic.Pointer[Catalog]
)

// Default returns the installed catalog, or the embedded tables when none
// was installed.
func Default() *Catalog {
	if cat := installed.Load(); cat != nil {
		return cat
	}
	return Embedded()
}

// Embedded returns the compiled-in tables, parsed once per process.
func Embedded() *Catalog {
	embeddedOnce.Do(func() {
		embedded = MustEmbedded()
	})
	return embedded
}

// Install makes cat the process-wide catalog. Passing nil restores the
// embedded tables.
func Install(cat *Catalog) {
	installed.Store(cat)
}

// Resolve honours the override file when one is configured. A file that
// fails to load is logged and the embedded tables are returned.
func Resolve(log *logger.Logger) *Catalog {
	path := strings.TrimSpace(os.Getenv(CatalogPathEnv))
	if path == "" {
		return Embedded()
	}
	cat, err := LoadFile(path)
	if err != nil {
		if log != nil {
			log.Warn("workout catalog override failed; using embedded tables", "path", path, "error", err)
		}
		return Embedded()
	}
	if log != nil {
		log.Info("workout catalog override loaded", "path", path, "version", cat.Version)
	}
	return cat
}

func MustEmbedded() *Catalog {
	data, err := catalogFS.ReadFile("catalog.yaml")
	if err != nil {
		panic(fmt.Sprintf("catalog: read embedded tables: %v", err))
	}
	cat, err := Parse(data)
	if err != nil {
		panic(fmt.Sprintf("catalog: parse embedded tables: %v", err))
	}
	return cat
}

func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func Parse(data []byte) (*Catalog, error) {
	var cat Catalog
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return nil, err
	}
	if err := cat.validate(); err != nil {
		return nil, err
	}
	cat.index()
	return &cat, nil
}

func (c *Catalog) validate() error {
	if len(c.EquipmentPatterns) == 0 {
		return errors.New("catalog: equipment_patterns is empty")
	}
	if len(c.MovementPatterns) == 0 {
		return errors.New("catalog: movement_patterns is empty")
	}
	for i, p := range c.EquipmentPatterns {
		if strings.TrimSpace(p.Pattern) == "" || strings.TrimSpace(p.Equipment) == "" {
			return fmt.Errorf("catalog: equipment_patterns[%d] incomplete", i)
		}
	}
	seen := map[string]bool{}
	for _, p := range c.MovementPatterns {
		if p.Pattern == "" || len(p.Keywords) == 0 {
			return fmt.Errorf("catalog: movement pattern %q has no keywords", p.Pattern)
		}
		if seen[p.Pattern] {
			return fmt.Errorf("catalog: movement pattern %q declared twice", p.Pattern)
		}
		seen[p.Pattern] = true
	}
	for label, v := range c.DifficultyLabels {
		if v < 1 || v > 10 {
			return fmt.Errorf("catalog: difficulty label %q out of range: %d", label, v)
		}
	}
	return nil
}

func (c *Catalog) index() {
	c.fillerSet = make(map[string]struct{}, len(c.FillerWords))
	for _, w := range c.FillerWords {
		c.fillerSet[strings.ToLower(strings.TrimSpace(w))] = struct{}{}
	}
}

func (c *Catalog) IsFiller(word string) bool {
	_, ok := c.fillerSet[word]
	return ok
}

// ContraindicatedPatterns unions the movement keywords for every injury that
// names (or is named by) a contraindication key. The result is sorted.
func (c *Catalog) ContraindicatedPatterns(injuries []string) []string {
	set := map[string]struct{}{}
	for _, raw := range injuries {
		injury := strings.ToLower(strings.TrimSpace(raw))
		if injury == "" {
			continue
		}
		for key, patterns := range c.Contraindications {
			if !strings.Contains(injury, key) && (len(injury) < 3 || !strings.Contains(key, injury)) {
				continue
			}
			for _, p := range patterns {
				if p = strings.ToLower(strings.TrimSpace(p)); p != "" {
					set[p] = struct{}{}
				}
			}
		}
	}
	out := make([]string, 0, len(set))
	for p := range set {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}
