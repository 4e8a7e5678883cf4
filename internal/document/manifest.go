// Package document models the YAML manifests that describe a set of charts
// to render in one batch.
package document

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Faneva385/svg-initiation/internal/attrs"
	"github.com/Faneva385/svg-initiation/internal/layout"
)

var (
	ErrEmptyManifest = errors.New("manifest has no charts")
	ErrDuplicateName = errors.New("duplicate chart name")
	ErrInvalidLabel  = errors.New("invalid label")
)

// Manifest is a batch of charts sharing defaults.
type Manifest struct {
	Version  int         `yaml:"version"`
	Defaults ChartSpec   `yaml:"defaults,omitempty"`
	Charts   []ChartSpec `yaml:"charts"`
}

// ChartSpec is one chart. Pointer fields distinguish "unset" from zero so
// that chart-level values can override the manifest defaults.
type ChartSpec struct {
	Name     string    `yaml:"name,omitempty"`
	Data     []float64 `yaml:"data,omitempty,flow"`
	Labels   []string  `yaml:"labels,omitempty,flow"`
	Donut    *float64  `yaml:"donut,omitempty"`
	Gap      *float64  `yaml:"gap,omitempty"`
	Start    string    `yaml:"start,omitempty"`
	Animate  *bool     `yaml:"animate,omitempty"`
	Duration string    `yaml:"duration,omitempty"`
	Easing   string    `yaml:"easing,omitempty"`
	Size     int       `yaml:"size,omitempty"`
}

// Merge returns c with unset fields taken from defaults.
func (c ChartSpec) Merge(defaults ChartSpec) ChartSpec {
	if c.Data == nil {
		c.Data = defaults.Data
	}
	if c.Labels == nil {
		c.Labels = defaults.Labels
	}
	if c.Donut == nil {
		c.Donut = defaults.Donut
	}
	if c.Gap == nil {
		c.Gap = defaults.Gap
	}
	if c.Start == "" {
		c.Start = defaults.Start
	}
	if c.Animate == nil {
		c.Animate = defaults.Animate
	}
	if c.Duration == "" {
		c.Duration = defaults.Duration
	}
	if c.Easing == "" {
		c.Easing = defaults.Easing
	}
	if c.Size == 0 {
		c.Size = defaults.Size
	}
	return c
}

// Attributes renders the chart as the string attributes it is
// configured with.
func (c ChartSpec) Attributes() map[string]string {
	raw := make(map[string]string)
	if len(c.Data) > 0 {
		raw[attrs.KeyData] = attrs.FormatMagnitudes(c.Data)
	}
	if len(c.Labels) > 0 {
		raw[attrs.KeyLabels] = strings.Join(c.Labels, attrs.Separator)
	}
	if c.Donut != nil {
		raw[attrs.KeyDonut] = strconv.FormatFloat(*c.Donut, 'f', -1, 64)
	}
	if c.Gap != nil {
		raw[attrs.KeyGap] = strconv.FormatFloat(*c.Gap, 'f', -1, 64)
	}
	if c.Start != "" {
		raw[attrs.KeyStart] = c.Start
	}
	if c.Animate != nil {
		raw[attrs.KeyAnimate] = strconv.FormatBool(*c.Animate)
	}
	if c.Duration != "" {
		raw[attrs.KeyDuration] = c.Duration
	}
	if c.Easing != "" {
		raw[attrs.KeyEasing] = c.Easing
	}
	return raw
}

// Parse validates the chart by parsing its attributes. Labels are joined
// with the attribute separator, so a label may not contain it.
func (c ChartSpec) Parse() (attrs.Attributes, error) {
	for i, l := range c.Labels {
		if strings.Contains(l, attrs.Separator) {
			return attrs.Attributes{}, fmt.Errorf("%w %d %q: must not contain %q", ErrInvalidLabel, i, l, attrs.Separator)
		}
	}
	return attrs.Parse(c.Attributes())
}

// Resolved returns every chart merged with the manifest defaults.
func (m *Manifest) Resolved() []ChartSpec {
	out := make([]ChartSpec, len(m.Charts))
	for i, c := range m.Charts {
		out[i] = c.Merge(m.Defaults)
	}
	return out
}

var namePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]*$`)

// Validate checks every chart and the uniqueness of names. Unnamed charts
// are allowed; exporters name them.
func (m *Manifest) Validate() error {
	if len(m.Charts) == 0 {
		return ErrEmptyManifest
	}
	seen := make(map[string]int, len(m.Charts))
	for i, c := range m.Resolved() {
		if c.Name != "" {
			if !namePattern.MatchString(c.Name) {
				return fmt.Errorf("chart %d: invalid name %q", i, c.Name)
			}
			if j, dup := seen[c.Name]; dup {
				return fmt.Errorf("chart %d: %w %q (first used by chart %d)", i, ErrDuplicateName, c.Name, j)
			}
			seen[c.Name] = i
		}
		if c.Size < 0 {
			return fmt.Errorf("chart %d: negative size %d", i, c.Size)
		}
		a, err := c.Parse()
		if err != nil {
			return fmt.Errorf("chart %d (%s): %w", i, c.Name, err)
		}
		if _, err := layout.Total(a.Data); err != nil {
			return fmt.Errorf("chart %d (%s): %w", i, c.Name, err)
		}
	}
	return nil
}

// ParseManifest decodes and validates a manifest. Unknown keys are errors.
func ParseManifest(r io.Reader) (*Manifest, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var m Manifest
	if err := dec.Decode(&m); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyManifest
		}
		return nil, fmt.Errorf("decode manifest: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// LoadManifest reads a manifest file.
func LoadManifest(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open manifest: %w", err)
	}
	defer f.Close()

	m, err := ParseManifest(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Marshal encodes m as YAML.
func (m *Manifest) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(m); err != nil {
		return nil, fmt.Errorf("encode manifest: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode manifest: %w", err)
	}
	return buf.Bytes(), nil
}
