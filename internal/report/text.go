package report

import (
	"bufio"
	"fmt"
	"io"
	"pdp-route-service/internal/domain"
	"strconv"
	"strings"
)

// NodeMapper translates routing indices back to location nodes.
type NodeMapper interface {
	IndexToNode(index int64) int
}

// WriteText renders traces in the console layout:
//
//	Objective 292:
//	Route for Vehicle 0:
//	0 -> 5 -> 1 -> 0
//	Time of the route: 98minutes
//	...
//	Total Time of all routes: 292minutes
//
// With a nil mapper the raw routing indices are printed.
func WriteText(w io.Writer, objective int64, traces []domain.RouteTrace, total int64, nodes NodeMapper) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "Objective %d:\n", objective)
	for _, t := range traces {
		fmt.Fprintf(bw, "Route for Vehicle %d:\n", t.VehicleID)
		fmt.Fprintln(bw, FormatPath(t, nodes))
		fmt.Fprintf(bw, "Time of the route: %dminutes\n", t.Cost)
	}
	fmt.Fprintf(bw, "Total Time of all routes: %dminutes\n", total)

	return bw.Flush()
}

// FormatPath joins the stops of a trace with " -> ".
func FormatPath(t domain.RouteTrace, nodes NodeMapper) string {
	parts := make([]string, 0, len(t.Indices))
	for _, idx := range t.Indices {
		if nodes != nil {
			parts = append(parts, strconv.Itoa(nodes.IndexToNode(idx)))
			continue
		}
		parts = append(parts, strconv.FormatInt(idx, 10))
	}
	return strings.Join(parts, " -> ")
}

// Nodes maps every index of a trace to its location node.
func Nodes(t domain.RouteTrace, nodes NodeMapper) []int {
	out := make([]int, 0, len(t.Indices))
	for _, idx := range t.Indices {
		out = append(out, nodes.IndexToNode(idx))
	}
	return out
}
