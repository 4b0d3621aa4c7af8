package engine

import (
	"fmt"
	"math"
	"reflect"
	"sort"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/chazu/gemforge/pkg/config"
)

// ---------------------------------------------------------------------------
// Recipe model
// ---------------------------------------------------------------------------

// ProductKind names what a recipe entry builds.
type ProductKind int

const (
	ProductEarring ProductKind = iota
	ProductRing
)

func (k ProductKind) String() string {
	switch k {
	case ProductEarring:
		return "earring"
	case ProductRing:
		return "ring"
	default:
		return fmt.Sprintf("ProductKind(%d)", int(k))
	}
}

// Product is one (earring ...) or (ring ...) form. Only the config
// matching Kind is meaningful. Out is the requested output path, empty
// when the recipe left it to the caller.
type Product struct {
	Kind    ProductKind
	Out     string
	Earring config.EarringConfig
	Ring    config.RingConfig
}

// Recipe is the result of evaluating a recipe file.
type Recipe struct {
	Seed     int64
	SeedSet  bool
	Products []Product

	base config.File
}

func newRecipe(base config.File) *Recipe {
	return &Recipe{Seed: base.Settings.Seed, base: base}
}

// ---------------------------------------------------------------------------
// Keyword to field mapping
// ---------------------------------------------------------------------------

// field is a config field addressable from a recipe keyword.
type field struct {
	tag  string // yaml tag, the mapstructure key
	kind reflect.Kind
}

var (
	earringFields = fieldsOf(reflect.TypeOf(config.EarringConfig{}))
	ringFields    = fieldsOf(reflect.TypeOf(config.RingConfig{}))
)

// fieldsOf maps recipe keywords onto the yaml-tagged fields of t. Each
// field answers to its kebab-case tag, and fields in millimeters also
// to the tag without the "-mm" suffix.
func fieldsOf(t reflect.Type) map[string]field {
	out := make(map[string]field, t.NumField()*2)
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		tag, _, _ := strings.Cut(sf.Tag.Get("yaml"), ",")
		if tag == "" || tag == "-" {
			continue
		}
		f := field{tag: tag, kind: sf.Type.Kind()}
		kw := strings.ReplaceAll(tag, "_", "-")
		out[kw] = f
		if short, ok := strings.CutSuffix(kw, "-mm"); ok {
			out[short] = f
		}
	}
	return out
}

// keywords lists the accepted keywords, sorted, for error messages.
func keywords(fields map[string]field) string {
	names := make([]string, 0, len(fields))
	for k := range fields {
		names = append(names, ":"+k)
	}
	sort.Strings(names)
	return strings.Join(names, " ")
}

// decodeInto applies keyword overrides onto target through mapstructure.
// Keys in skip are handled by the caller.
func decodeInto(form string, kw map[string]zygo.Sexp, fields map[string]field, target any, skip ...string) error {
	input := make(map[string]any, len(kw))
	for name, v := range kw {
		if contains(skip, name) {
			continue
		}
		f, ok := fields[name]
		if !ok {
			return fmt.Errorf("%s: unknown parameter :%s (expected one of %s)", form, name, keywords(fields))
		}
		val, err := toValue(v, f.kind)
		if err != nil {
			return fmt.Errorf("%s: %s: %w", form, name, err)
		}
		input[f.tag] = val
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:     "yaml",
		Result:      target,
		ErrorUnused: true,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", form, err)
	}
	if err := dec.Decode(input); err != nil {
		return fmt.Errorf("%s: %w", form, err)
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toValue converts a recipe value to the Go value for a field of kind.
// A keyword given without a value sets a boolean field.
func toValue(s zygo.Sexp, kind reflect.Kind) (any, error) {
	switch kind {
	case reflect.Bool:
		switch v := s.(type) {
		case *zygo.SexpBool:
			return v.Val, nil
		case *zygo.SexpSentinel:
			if v == zygo.SexpNull {
				return true, nil
			}
		}
		return nil, fmt.Errorf("expected true or false, got %s", s.SexpString(nil))
	case reflect.Int, reflect.Int64:
		switch v := s.(type) {
		case *zygo.SexpInt:
			return v.Val, nil
		case *zygo.SexpFloat:
			if v.Val == math.Trunc(v.Val) {
				return int64(v.Val), nil
			}
		}
		return nil, fmt.Errorf("expected integer, got %s", s.SexpString(nil))
	case reflect.Float64:
		return toFloat64(s)
	}
	return nil, fmt.Errorf("unsupported field kind %s", kind)
}

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toString extracts a string from a Sexp.
func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// toKeywordString extracts a keyword name or plain string from a Sexp.
// Handles both preprocessed keywords (__kw_reference) and plain strings
// ("reference").
func toKeywordString(s zygo.Sexp) (string, error) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", fmt.Errorf("expected keyword or string, got %T (%s)", s, s.SexpString(nil))
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], nil
	}
	return str.S, nil
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs the recipe builtins into a zygomys
// environment. Each product form appends to r.Products.
//
// Source must go through rewriteSource first so :keyword arguments
// arrive as kwPrefix strings.
func registerBuiltins(env *zygo.Zlisp, r *Recipe) {

	// -----------------------------------------------------------------------
	// (seed 7)
	// -----------------------------------------------------------------------
	env.AddFunction("seed", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("seed requires exactly 1 argument, got %d", len(args))
		}
		n, ok := args[0].(*zygo.SexpInt)
		if !ok {
			return zygo.SexpNull, fmt.Errorf("seed: expected integer, got %s", args[0].SexpString(nil))
		}
		r.Seed = n.Val
		r.SeedSet = true
		return n, nil
	})

	// -----------------------------------------------------------------------
	// (earring :preset :reference :cluster-stone-count 24 :add-post false
	//          :out "earring.glb")
	// -----------------------------------------------------------------------
	env.AddFunction("earring", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseProductArgs(args, "preset")
		if len(pa.positional) > 0 {
			return zygo.SexpNull, fmt.Errorf("earring: unexpected positional argument %s", pa.positional[0].SexpString(nil))
		}
		p := Product{Kind: ProductEarring, Earring: r.base.Earring}

		if v, ok := pa.kw["preset"]; ok {
			preset, err := toKeywordString(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("earring: preset: %w", err)
			}
			switch preset {
			case "default":
				p.Earring = config.DefaultEarring()
			case "reference":
				p.Earring = config.ReferenceEarring()
			default:
				return zygo.SexpNull, fmt.Errorf("earring: unknown preset %q, expected default or reference", preset)
			}
		}
		if err := readOut(pa, &p); err != nil {
			return zygo.SexpNull, fmt.Errorf("earring: %w", err)
		}
		if err := decodeInto("earring", pa.kw, earringFields, &p.Earring, "preset", "out"); err != nil {
			return zygo.SexpNull, err
		}

		r.Products = append(r.Products, p)
		return &zygo.SexpStr{S: p.Kind.String()}, nil
	})

	// -----------------------------------------------------------------------
	// (ring :inner-diameter 17 :add-stone false :out "ring.glb")
	// -----------------------------------------------------------------------
	env.AddFunction("ring", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseProductArgs(args, "preset")
		if len(pa.positional) > 0 {
			return zygo.SexpNull, fmt.Errorf("ring: unexpected positional argument %s", pa.positional[0].SexpString(nil))
		}
		p := Product{Kind: ProductRing, Ring: r.base.Ring}

		if v, ok := pa.kw["preset"]; ok {
			preset, err := toKeywordString(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("ring: preset: %w", err)
			}
			if preset != "default" {
				return zygo.SexpNull, fmt.Errorf("ring: unknown preset %q, expected default", preset)
			}
			p.Ring = config.DefaultRing()
		}
		if err := readOut(pa, &p); err != nil {
			return zygo.SexpNull, fmt.Errorf("ring: %w", err)
		}
		if err := decodeInto("ring", pa.kw, ringFields, &p.Ring, "preset", "out"); err != nil {
			return zygo.SexpNull, err
		}

		r.Products = append(r.Products, p)
		return &zygo.SexpStr{S: p.Kind.String()}, nil
	})
}

func readOut(pa productArgs, p *Product) error {
	v, ok := pa.kw["out"]
	if !ok {
		return nil
	}
	out, err := toString(v)
	if err != nil {
		return fmt.Errorf("out: %w", err)
	}
	p.Out = out
	return nil
}
