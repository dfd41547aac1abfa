package progress

import (
	"bytes"
	"encoding/csv"
	"strconv"

	log "github.com/sirupsen/logrus"
)

type Renderer interface {
	RenderTeamProgress(stats []MemberProgress) (string, error)
}

type CsvRendererImpl struct {
}

func NewCsvRenderer() *CsvRendererImpl {
	return &CsvRendererImpl{}
}

func (r *CsvRendererImpl) RenderTeamProgress(stats []MemberProgress) (string, error) {
	data := make([][]string, 0, len(stats)+1)
	data = append(data, []string{
		"Member", "Role", "Completed", "In Progress", "Pending", "Blocked",
		"Progress %", "Story Points", "Bugs Fixed", "Code Reviews",
	})
	for _, s := range stats {
		productivity := s.Productivity()
		data = append(data, []string{
			s.Member.Name,
			s.Member.Role,
			strconv.Itoa(s.Completed),
			strconv.Itoa(s.InProgress),
			strconv.Itoa(s.Pending),
			strconv.Itoa(s.Blocked),
			strconv.Itoa(s.Progress()),
			strconv.Itoa(productivity.StoryPoints),
			strconv.Itoa(productivity.BugsFixed),
			strconv.Itoa(productivity.CodeReviews),
		})
	}

	var b bytes.Buffer
	writer := csv.NewWriter(&b)
	for _, row := range data {
		if err := writer.Write(row); err != nil {
			log.Errorf("Error writing to csv: %v", err)
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		log.Errorf("Error writing to csv: %v", err)
		return "", err
	}
	return b.String(), nil
}
