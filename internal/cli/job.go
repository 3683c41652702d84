package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"

	"partsync/internal/domain"
	"partsync/internal/service"
)

// Job is one reconcile request read from a job file. JSON job files are accepted
// because JSON is valid YAML.
type Job struct {
	Name    string                `yaml:"name" json:"name"`
	Kind    domain.DocumentKind   `yaml:"kind" json:"kind"`
	BaseOp  int                   `yaml:"base_op" json:"base_op"`
	Part    *domain.PartRecord    `yaml:"part" json:"part"`
	Drawing *domain.DrawingRecord `yaml:"drawing" json:"drawing"`
	Current map[string]string     `yaml:"current" json:"current"`

	// Source is the file the job was read from.
	Source string `yaml:"-" json:"source"`
}

// jobFile holds several jobs under a top-level "jobs" key.
type jobFile struct {
	Jobs []Job `yaml:"jobs"`
}

// ParseJobs decodes data as either a list of jobs under "jobs" or a single job.
// Jobs without a name are named after the source file and their position. A job
// without a drawing is valid and reconciles to an empty result.
func ParseJobs(data []byte, source string) ([]Job, error) {
	var file jobFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrInvalidJob, source, err)
	}

	jobs := file.Jobs
	if len(jobs) == 0 {
		var single Job
		if err := yaml.Unmarshal(data, &single); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", domain.ErrInvalidJob, source, err)
		}
		jobs = []Job{single}
	}

	base := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	for i := range jobs {
		if jobs[i].Part == nil && jobs[i].Drawing == nil {
			return nil, fmt.Errorf("%w: %s: job %d has neither part nor drawing", domain.ErrInvalidJob, source, i+1)
		}
		if jobs[i].Name == "" {
			jobs[i].Name = base
			if len(jobs) > 1 {
				jobs[i].Name = fmt.Sprintf("%s#%d", base, i+1)
			}
		}
		jobs[i].Source = source
	}
	return jobs, nil
}

// LoadJobs reads and parses every job file in order.
func LoadJobs(paths []string) ([]Job, error) {
	var all []Job
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("reading job file: %w", err)
		}
		jobs, err := ParseJobs(data, p)
		if err != nil {
			return nil, err
		}
		all = append(all, jobs...)
	}
	return all, nil
}

// partNumber prefers the drawing's part number and falls back to the part's.
func (j *Job) partNumber() string {
	if j.Drawing != nil && j.Drawing.PartNumber != "" {
		return j.Drawing.PartNumber
	}
	if j.Part != nil {
		return j.Part.PartNumber
	}
	return ""
}

func (j *Job) input() *service.ReconcileInput {
	return &service.ReconcileInput{
		Kind:      j.Kind,
		Part:      j.Part,
		Drawing:   j.Drawing,
		Current:   j.Current,
		BaseOp:    j.BaseOp,
		CreatedBy: "cli",
	}
}
