package supervision

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"orplanning/internal/domain"
)

var digitRun = regexp.MustCompile(`\d+`)

// roomOrdinal extracts the last run of digits in a room number ("101" -> 101,
// "B12" -> 12, "Salle 3" -> 3).
func roomOrdinal(number string) (int, bool) {
	runs := digitRun.FindAllString(number, -1)
	if len(runs) == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(runs[len(runs)-1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// checkContiguity reports whether rooms are physically adjacent. When every room
// carries explicit adjacency the rooms must form a connected subgraph; otherwise the
// numeric suffixes of their numbers must form a gapless sequence.
func checkContiguity(rooms []*domain.Room) (bool, string) {
	if len(rooms) < 2 {
		return true, ""
	}
	if hasTopology(rooms) {
		return connected(rooms)
	}
	return consecutiveNumbers(rooms)
}

func hasTopology(rooms []*domain.Room) bool {
	for _, r := range rooms {
		if len(r.AdjacentRoomIDs) == 0 {
			return false
		}
	}
	return true
}

// connected runs a BFS over the undirected adjacency restricted to rooms.
func connected(rooms []*domain.Room) (bool, string) {
	in := make(map[string]struct{}, len(rooms))
	for _, r := range rooms {
		in[r.ID] = struct{}{}
	}
	adj := make(map[string][]string, len(rooms))
	for _, r := range rooms {
		for _, n := range r.AdjacentRoomIDs {
			if _, ok := in[n]; !ok || n == r.ID {
				continue
			}
			adj[r.ID] = append(adj[r.ID], n)
			adj[n] = append(adj[n], r.ID)
		}
	}
	visited := map[string]struct{}{rooms[0].ID: {}}
	queue := []string{rooms[0].ID}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, n := range adj[cur] {
			if _, ok := visited[n]; ok {
				continue
			}
			visited[n] = struct{}{}
			queue = append(queue, n)
		}
	}
	if len(visited) == len(in) {
		return true, ""
	}
	var isolated []string
	for _, r := range rooms {
		if _, ok := visited[r.ID]; !ok {
			isolated = append(isolated, r.Number)
		}
	}
	return false, fmt.Sprintf("rooms %s are not adjacent to room %s", strings.Join(isolated, ", "), rooms[0].Number)
}

func consecutiveNumbers(rooms []*domain.Room) (bool, string) {
	ordinals := make([]int, 0, len(rooms))
	for _, r := range rooms {
		n, ok := roomOrdinal(r.Number)
		if !ok {
			return false, fmt.Sprintf("room number %q has no numeric ordinal", r.Number)
		}
		ordinals = append(ordinals, n)
	}
	sort.Ints(ordinals)
	for i := 1; i < len(ordinals); i++ {
		if ordinals[i] != ordinals[i-1]+1 {
			return false, fmt.Sprintf("gap between room ordinals %d and %d", ordinals[i-1], ordinals[i])
		}
	}
	return true, ""
}
