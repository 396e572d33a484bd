package server

import (
	"context"
	"encoding/json"

	"github.com/dekarrin/pbe"
	"github.com/dekarrin/pbe/internal/checkpoint"
	"github.com/dekarrin/pbe/internal/examplefile"
	"github.com/dekarrin/pbe/server/dao"
)

// submittedJob is the POST /jobs request body: a grammar, an examples
// array in internal/examplefile format, and an optional config.
type submittedJob struct {
	Grammar  string          `json:"grammar"`
	Examples json.RawMessage `json:"examples"`
	Config   pbe.TOMLConfig  `json:"config"`
}

type jobView struct {
	ID      string `json:"id"`
	Status  string `json:"status"`
	Program string `json:"program,omitempty"`
}

func toJobView(j dao.Job) jobView {
	return jobView{ID: j.ID.String(), Status: string(j.Status), Program: j.Program}
}

// runInline runs synthesis against j up to the server's per-request
// deadline (inlineTimeoutS), per SPEC_FULL.md §3.3: a match (or a rejected
// grammar/examples payload) within that window finishes the job as
// done/no-solution; otherwise the job is left running with a checkpoint
// saved to its row, ready for a later call to pick back up via
// continueInline.
func (s *Server) runInline(ctx context.Context, j dao.Job) (dao.Job, error) {
	examples, err := examplefile.Parse(j.Examples)
	if err != nil {
		j.Status = dao.StatusNoSolution
		return s.store.Jobs().Update(ctx, j)
	}

	synth, err := pbe.New(j.Grammar, jobConfig(j))
	if err != nil {
		j.Status = dao.StatusNoSolution
		return s.store.Jobs().Update(ctx, j)
	}

	program, ok, snap := synth.SynthesizeWithSnapshot(examples, s.inlineTimeoutS, nil, nil)
	return s.finishRound(ctx, j, program, ok, snap)
}

// continueInline resumes a running job from its saved checkpoint, the
// path GET /jobs/{id} takes when a prior POST /jobs call left it running.
func (s *Server) continueInline(ctx context.Context, j dao.Job) (dao.Job, error) {
	if len(j.Checkpoint) == 0 {
		return s.runInline(ctx, j)
	}

	examples, err := examplefile.Parse(j.Examples)
	if err != nil {
		j.Status = dao.StatusNoSolution
		return s.store.Jobs().Update(ctx, j)
	}

	snap, err := checkpoint.Restore(j.Checkpoint)
	if err != nil {
		j.Status = dao.StatusNoSolution
		return s.store.Jobs().Update(ctx, j)
	}

	synth, err := pbe.New(j.Grammar, jobConfig(j))
	if err != nil {
		j.Status = dao.StatusNoSolution
		return s.store.Jobs().Update(ctx, j)
	}

	program, ok, next := synth.ResumeFromSnapshot(snap, examples, s.inlineTimeoutS, nil, nil)
	return s.finishRound(ctx, j, program, ok, next)
}

func (s *Server) finishRound(ctx context.Context, j dao.Job, program string, ok bool, snap checkpoint.Snapshot) (dao.Job, error) {
	if ok {
		j.Status = dao.StatusDone
		j.Program = program
		j.Checkpoint = nil
	} else {
		j.Status = dao.StatusRunning
		j.Checkpoint = snap.Save()
	}
	return s.store.Jobs().Update(ctx, j)
}

func jobConfig(j dao.Job) pbe.Config {
	var tc pbe.TOMLConfig
	if len(j.Config) > 0 {
		_ = json.Unmarshal(j.Config, &tc)
	}
	return tc.ToConfig()
}
