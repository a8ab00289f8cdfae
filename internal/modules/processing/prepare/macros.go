package prepare

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dop251/goja"
)

// Fields stores macro context variables taken from the document.
type Fields map[string]interface{}

// ExpandMacros expands all [[ ... ]] macros in text before markdown rendering:
// [[$field]] substitution, [[?cond|true|false?]] conditionals and [[#js]]
// JavaScript evaluation. Unknown or broken macros are left untouched.
func ExpandMacros(text string, fields Fields) string {
	return macroPattern.ReplaceAllStringFunc(text, func(match string) string {
		inner := macroPattern.FindStringSubmatch(match)
		if len(inner) < 2 {
			return match
		}
		expr := strings.TrimSpace(inner[1])
		if expr == "" {
			return match
		}

		if strings.HasPrefix(expr, "$") {
			varName := strings.TrimSpace(strings.TrimPrefix(expr, "$"))
			if val, ok := fields[varName]; ok {
				return stringify(val)
			}
			return match
		}

		if strings.HasPrefix(expr, "?") && strings.HasSuffix(expr, "?") {
			return expandConditional(expr, fields, match)
		}

		if strings.HasPrefix(expr, "#") {
			return expandJS(strings.TrimPrefix(expr, "#"), fields, match)
		}

		return match
	})
}

func expandConditional(expr string, fields Fields, fallback string) string {
	inner := strings.Trim(strings.TrimSpace(expr), "?")
	parts := strings.SplitN(inner, "|", 3)
	if len(parts) < 3 {
		return fallback
	}

	condition := normalizeToken(parts[0])
	trueVal := normalizeToken(parts[1])
	falseVal := normalizeToken(parts[2])
	if condition == "" {
		return fallback
	}

	op := ""
	for _, candidate := range []string{"==", "!=", ">", "<"} {
		if strings.Contains(condition, candidate) {
			op = candidate
			break
		}
	}
	if op == "" {
		return fallback
	}

	left, right, found := strings.Cut(condition, op)
	if !found {
		return fallback
	}
	leftValue := fields[strings.TrimPrefix(strings.TrimSpace(left), "$")]
	rightValue := strings.TrimSpace(right)

	cond := false
	switch op {
	case ">":
		lf, lok := asFloat(leftValue)
		rf, rerr := strconv.ParseFloat(rightValue, 64)
		cond = lok && rerr == nil && lf > rf
	case "<":
		lf, lok := asFloat(leftValue)
		rf, rerr := strconv.ParseFloat(rightValue, 64)
		cond = lok && rerr == nil && lf < rf
	case "==":
		cond = stringify(leftValue) == rightValue
	case "!=":
		cond = stringify(leftValue) != rightValue
	}

	if cond {
		return trueVal
	}
	return falseVal
}

// expandJS evaluates a JS expression in a throwaway goja VM with document
// fields bound as globals. A hung script is interrupted after one second.
func expandJS(code string, fields Fields, fallback string) string {
	vm := goja.New()
	for k, v := range fields {
		if strings.TrimSpace(k) == "" {
			continue
		}
		_ = vm.Set(k, v)
	}

	type result struct {
		val string
		err error
	}
	ch := make(chan result, 1)
	go func() {
		v, err := vm.RunString(code)
		if err != nil {
			ch <- result{err: err}
			return
		}
		ch <- result{val: v.String()}
	}()

	select {
	case r := <-ch:
		if r.err != nil {
			return fallback
		}
		return r.val
	case <-time.After(1 * time.Second):
		vm.Interrupt("macro execution timeout")
		return fallback
	}
}

func normalizeToken(s string) string {
	s = strings.ReplaceAll(s, `"`, "")
	s = strings.ReplaceAll(s, `'`, "")
	return strings.TrimSpace(s)
}

func stringify(v interface{}) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return value
	case fmt.Stringer:
		return value.String()
	case int:
		return strconv.Itoa(value)
	case int64:
		return strconv.FormatInt(value, 10)
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(value)
	default:
		return fmt.Sprintf("%v", value)
	}
}

func asFloat(v interface{}) (float64, bool) {
	switch value := v.(type) {
	case int:
		return float64(value), true
	case int64:
		return float64(value), true
	case float64:
		return value, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		return f, err == nil
	default:
		return 0, false
	}
}
