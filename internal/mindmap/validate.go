package mindmap

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report JSON names so paths match what the caller sent.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Decode converts raw tool arguments into a validated Request.
// Any failure is a *ValidationError listing every violation: wrong-typed
// values together with rule and ref violations from Validate.
func Decode(args map[string]any) (*Request, error) {
	m, err := normalize(args)
	if err != nil {
		return nil, &ValidationError{Violations: []Violation{{Message: fmt.Sprintf("arguments are not JSON-encodable: %v", err)}}}
	}
	if m == nil {
		m = map[string]any{}
	}

	d := newDecoder()
	req := d.request(m)

	violations, err := check(req)
	if err != nil {
		return nil, err
	}
	violations = append(d.violations, dropMistyped(violations, d.mistyped)...)
	if len(violations) > 0 {
		return nil, &ValidationError{Violations: violations}
	}
	return req, nil
}

// Validate checks the request shape and its topic references, collecting
// every violation rather than stopping at the first.
func Validate(req *Request) error {
	violations, err := check(req)
	if err != nil {
		return err
	}
	if len(violations) > 0 {
		return &ValidationError{Violations: violations}
	}
	return nil
}

func check(req *Request) ([]Violation, error) {
	var violations []Violation

	if err := validate.Struct(req); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return nil, &ValidationError{Violations: []Violation{{Message: err.Error()}}}
		}
		for _, fe := range fieldErrs {
			violations = append(violations, Violation{
				Field:   fieldPath(fe.Namespace()),
				Message: ruleMessage(fe),
			})
		}
	}

	return append(violations, checkRefs(req)...), nil
}

// dropMistyped removes rule violations on paths already reported as
// wrong-typed, or nested under one; the zero value left there would
// otherwise read as missing.
func dropMistyped(violations []Violation, mistyped map[string]bool) []Violation {
	out := violations[:0]
	for _, v := range violations {
		if !underMistyped(v.Field, mistyped) {
			out = append(out, v)
		}
	}
	return out
}

func underMistyped(field string, mistyped map[string]bool) bool {
	for p := field; p != ""; p = parentPath(p) {
		if mistyped[p] {
			return true
		}
	}
	return false
}

// parentPath strips the last ".name" or "[i]" segment of a field path.
func parentPath(p string) string {
	if i := strings.LastIndexAny(p, ".["); i > 0 {
		return p[:i]
	}
	return ""
}

// checkRefs rejects duplicate topic refs and relationship endpoints that
// name no topic.
func checkRefs(req *Request) []Violation {
	var violations []Violation
	declared := make(map[string]string)

	var visit func(topics []*Topic, prefix string)
	visit = func(topics []*Topic, prefix string) {
		for i, t := range topics {
			if t == nil {
				continue
			}
			path := fmt.Sprintf("%s[%d]", prefix, i)
			if t.Ref != "" {
				if first, dup := declared[t.Ref]; dup {
					violations = append(violations, Violation{
						Field:   path + ".ref",
						Message: fmt.Sprintf("duplicates ref %q first declared at %s", t.Ref, first),
					})
				} else {
					declared[t.Ref] = path
				}
			}
			visit(t.Children, path+".children")
		}
	}
	visit(req.Topics, "topics")

	for i, rel := range req.Relationships {
		for _, end := range []struct{ name, ref string }{{"from", rel.From}, {"to", rel.To}} {
			if end.ref == "" {
				continue
			}
			if _, ok := declared[end.ref]; !ok {
				violations = append(violations, Violation{
					Field:   fmt.Sprintf("relationships[%d].%s", i, end.name),
					Message: fmt.Sprintf("references unknown ref %q", end.ref),
				})
			}
		}
	}
	return violations
}

// fieldPath drops the root struct name from a validator namespace:
// "Request.topics[0].title" becomes "topics[0].title".
func fieldPath(ns string) string {
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}

func ruleMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	default:
		return fmt.Sprintf("failed the %q rule", fe.Tag())
	}
}
