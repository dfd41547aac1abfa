package progress

import (
	"math"
	"strings"

	"github.com/pmdash/pmdash/pkg/project"
	"github.com/pmdash/pmdash/pkg/team"
)

type Slice struct {
	Label string
	Value int
}

type Point struct {
	Label string
	Value int
}

type MostActive struct {
	Name  string
	Count int
}

type Summary struct {
	Project        *project.Info
	TeamSize       int
	TotalTasks     int
	CompletedTasks int
	OpenIssues     int
	SprintProgress int
	MostActive     MostActive
	Distribution   []Slice
	SprintSeries   []Point
}

type Productivity struct {
	StoryPoints int
	BugsFixed   int
	CodeReviews int
}

type MemberProgress struct {
	Member     team.TeamMember
	Completed  int
	InProgress int
	Pending    int
	Blocked    int
}

func (m MemberProgress) Total() int {
	return m.Completed + m.InProgress + m.Pending + m.Blocked
}

// Progress is the rounded share of completed tasks, 0 without tasks.
func (m MemberProgress) Progress() int {
	total := m.Total()
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(m.Completed) / float64(total) * 100))
}

func (m MemberProgress) Productivity() Productivity {
	return Productivity{
		StoryPoints: m.Completed*3 + m.InProgress,
		BugsFixed:   m.Completed,
		CodeReviews: m.Completed + m.InProgress,
	}
}

// Summarize builds the dashboard figures. info may be nil when no project is stored.
func Summarize(info *project.Info, board project.TaskBoard, members []team.TeamMember) Summary {
	sprintProgress := 0
	if info != nil {
		sprintProgress = info.Status.ProgressPercent
	}
	completed := len(board[project.TaskCompleted])
	blocked := len(board[project.TaskBlocked])

	return Summary{
		Project:        info,
		TeamSize:       len(members),
		TotalTasks:     board.Total(),
		CompletedTasks: completed,
		OpenIssues:     blocked,
		SprintProgress: sprintProgress,
		MostActive:     mostActive(members, board[project.TaskActive]),
		Distribution: []Slice{
			{Label: "Completed", Value: completed},
			{Label: "Active", Value: len(board[project.TaskActive])},
			{Label: "Blocked", Value: blocked},
			{Label: "Pending", Value: len(board[project.TaskPending])},
		},
		SprintSeries: []Point{
			{Label: "Week 1", Value: 0},
			{Label: "Week 2", Value: sprintProgress},
			{Label: "Week 3", Value: min(100, sprintProgress+20)},
			{Label: "Week 4", Value: 100},
		},
	}
}

// mostActive picks the member whose full name appears in the most active tasks.
// Ties keep the earlier member; nobody is picked without at least one task.
func mostActive(members []team.TeamMember, active []string) MostActive {
	top := MostActive{}
	for _, m := range members {
		count := countContaining(active, m.Name)
		if count > top.Count {
			top = MostActive{Name: m.Name, Count: count}
		}
	}
	return top
}

// MemberStats counts, per member, the tasks of each status mentioning the member's first name.
func MemberStats(members []team.TeamMember, board project.TaskBoard) []MemberProgress {
	stats := make([]MemberProgress, 0, len(members))
	for _, m := range members {
		name := m.FirstName()
		stats = append(stats, MemberProgress{
			Member:     m,
			Completed:  countContaining(board[project.TaskCompleted], name),
			InProgress: countContaining(board[project.TaskActive], name),
			Pending:    countContaining(board[project.TaskPending], name),
			Blocked:    countContaining(board[project.TaskBlocked], name),
		})
	}
	return stats
}

func countContaining(items []string, name string) int {
	count := 0
	for _, item := range items {
		if strings.Contains(item, name) {
			count++
		}
	}
	return count
}
