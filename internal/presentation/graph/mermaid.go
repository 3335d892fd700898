package graph

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/scenarist/pkg/domain"
	"github.com/tidwall/gjson"
)

// Overlay highlights steps on the flowchart.
type Overlay struct {
	// Current is the order of the step being edited, 0 for none.
	Current int
}

// GenerateMermaid produces a Mermaid flowchart of a scenario from its steps.
// Steps are keyed by order since transitions reference next_step_order.
// Shapes follow the step type:
// - end: ((Circle))
// - gpt_request: [[Subroutine]]
// - input: [/Parallelogram/]
// - condition: {Rhombus}
// - message: [Rectangle]
// Transitions pointing to an order no step has are drawn dotted to a "missing" node.
func GenerateMermaid(steps []domain.Step, overlay *Overlay) string {
	sorted := make([]domain.Step, len(steps))
	copy(sorted, steps)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Order < sorted[j].Order })

	known := make(map[int]bool, len(sorted))
	for _, st := range sorted {
		known[st.Order] = true
	}

	var sb strings.Builder
	sb.WriteString("graph TD\n")

	missing := make(map[int]bool)
	var inactive []string
	for _, st := range sorted {
		id := stepID(st.Order)

		opener, closer := "[", "]"
		switch st.StepType {
		case domain.StepEnd:
			opener, closer = "((", "))"
		case domain.StepGPTRequest:
			opener, closer = "[[", "]]"
		case domain.StepInput:
			opener, closer = "[/", "/]"
		case domain.StepCondition:
			opener, closer = "{", "}"
		}
		fmt.Fprintf(&sb, "    %s%s\"%d. %s\"%s\n", id, opener, st.Order, escape(st.Name), closer)
		if !st.IsActive {
			inactive = append(inactive, id)
		}

		for _, e := range edges(st) {
			to := stepID(e.to)
			arrow := "-->"
			if !known[e.to] {
				to = "missing_" + fmt.Sprint(e.to)
				missing[e.to] = true
				arrow = "-.->"
			}
			if e.label != "" {
				if arrow == "-->" {
					arrow = fmt.Sprintf("-- \"%s\" -->", escape(e.label))
				} else {
					arrow = fmt.Sprintf("-. \"%s\" .->", escape(e.label))
				}
			}
			fmt.Fprintf(&sb, "    %s %s %s\n", id, arrow, to)
		}
	}

	if len(missing) > 0 {
		for _, o := range sortedKeys(missing) {
			fmt.Fprintf(&sb, "    missing_%d[\"%d ?\"]\n", o, o)
		}
	}

	if len(inactive) > 0 || (overlay != nil && overlay.Current > 0) || len(missing) > 0 {
		sb.WriteString("\n    %% Styles\n")
	}
	if len(inactive) > 0 {
		sb.WriteString("    classDef inactive fill:#dfe6e9,stroke:#636e72,stroke-dasharray:3 3,color:#000;\n")
		fmt.Fprintf(&sb, "    class %s inactive;\n", strings.Join(inactive, ","))
	}
	if len(missing) > 0 {
		sb.WriteString("    classDef missing fill:#fff,stroke:#e17055,stroke-width:2px,color:#e17055;\n")
		for _, o := range sortedKeys(missing) {
			fmt.Fprintf(&sb, "    class missing_%d missing;\n", o)
		}
	}
	if overlay != nil && overlay.Current > 0 && known[overlay.Current] {
		// Force black text (color:#000) for contrast on light and dark themes.
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")
		fmt.Fprintf(&sb, "    class %s current;\n", stepID(overlay.Current))
	}

	return sb.String()
}

type edge struct {
	label string
	to    int
}

// edges reads the resolved transitions of a step from its data document.
// Unresolved (null) targets and malformed data produce no edges.
func edges(st domain.Step) []edge {
	if !gjson.Valid(st.Data) {
		return nil
	}
	doc := gjson.Parse(st.Data)

	var out []edge
	doc.Get("transitions").ForEach(func(_, t gjson.Result) bool {
		if next := t.Get("next_step_order"); next.Type == gjson.Number {
			out = append(out, edge{label: t.Get("condition").String(), to: int(next.Int())})
		}
		return true
	})
	doc.Get("conditions").ForEach(func(_, c gjson.Result) bool {
		if next := c.Get("next_step_order"); next.Type == gjson.Number {
			label := strings.TrimSpace(fmt.Sprintf("%s %s %s",
				c.Get("field").String(), c.Get("operator").String(), c.Get("value").String()))
			out = append(out, edge{label: label, to: int(next.Int())})
		}
		return true
	})
	return out
}

func stepID(order int) string {
	if order < 0 {
		return fmt.Sprintf("step_n%d", -order)
	}
	return fmt.Sprintf("step_%d", order)
}

func escape(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}

func sortedKeys(m map[int]bool) []int {
	out := make([]int, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Ints(out)
	return out
}
