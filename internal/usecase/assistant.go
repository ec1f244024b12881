package usecase

import (
	"context"
	"fmt"

	"github.com/kanban-board/kanban/internal/domain"
	"github.com/kanban-board/kanban/internal/engine"
)

// AssistTaskInput identifies the task an assistant use case works on.
type AssistTaskInput struct {
	TaskID string
}

// AssistTaskOutput contains the task after the assistant result was applied.
type AssistTaskOutput struct {
	Task domain.Task
}

// assistDeps is shared by the AI-assisted use cases.
type assistDeps struct {
	assistant domain.AIAssistant
	board     BoardDeps
}

// run reads the task, asks the assistant outside of any board change, then
// applies the updates built from the answer to a freshly loaded board.
// The result is dropped with ErrStaleTask if the task left the board while
// the call was in flight. Assistant errors are returned unchanged and never
// touch the board.
func (d assistDeps) run(
	ctx context.Context,
	op, ref string,
	ask func(ctx context.Context, task domain.Task) ([]domain.FieldUpdate, error),
) (*AssistTaskOutput, error) {
	if d.assistant == nil {
		return nil, domain.ErrNoAssistant
	}
	e, err := d.board.open()
	if err != nil {
		return nil, err
	}
	task, err := requireTask(e, ref)
	if err != nil {
		return nil, err
	}
	taskID := task.ID

	log := d.board.logger()
	log.Debug(taskID, "ai", op+": requesting")
	updates, err := ask(ctx, task)
	if err != nil {
		log.Warn(taskID, "ai", fmt.Sprintf("%s: %v", op, err))
		return nil, err
	}

	var updated domain.Task
	_, _, err = d.board.apply(func(e *engine.Engine) error {
		if _, ok := e.Task(taskID); !ok {
			log.Info(taskID, "ai", op+": task gone, discarding result")
			return fmt.Errorf("%s: %w", op, domain.ErrStaleTask)
		}
		if err := e.ApplyFieldUpdate(taskID, updates...); err != nil {
			return err
		}
		updated, _ = e.Task(taskID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Info(taskID, "ai", op+": applied")
	return &AssistTaskOutput{Task: updated}, nil
}

// GenerateSubtasks appends assistant-generated subtasks to a task.
type GenerateSubtasks struct {
	deps assistDeps
}

// NewGenerateSubtasks creates a new GenerateSubtasks use case.
func NewGenerateSubtasks(assistant domain.AIAssistant, board BoardDeps) *GenerateSubtasks {
	return &GenerateSubtasks{deps: assistDeps{assistant: assistant, board: board}}
}

// Execute asks for subtasks based on the task title and appends them, unchecked.
func (uc *GenerateSubtasks) Execute(ctx context.Context, in AssistTaskInput) (*AssistTaskOutput, error) {
	return uc.deps.run(ctx, "generate subtasks", in.TaskID, func(ctx context.Context, task domain.Task) ([]domain.FieldUpdate, error) {
		texts, err := uc.deps.assistant.GenerateSubtasks(ctx, task.Title)
		if err != nil {
			return nil, err
		}
		subtasks := make([]domain.Subtask, 0, len(texts))
		for _, text := range texts {
			subtasks = append(subtasks, domain.Subtask{
				ID:   uc.deps.board.IDs.NewID(domain.SubtaskIDPrefix),
				Text: text,
			})
		}
		return []domain.FieldUpdate{domain.AddSubtasks{Subtasks: subtasks}}, nil
	})
}

// SuggestPriority sets a task's priority to the assistant's suggestion.
type SuggestPriority struct {
	deps assistDeps
}

// NewSuggestPriority creates a new SuggestPriority use case.
func NewSuggestPriority(assistant domain.AIAssistant, board BoardDeps) *SuggestPriority {
	return &SuggestPriority{deps: assistDeps{assistant: assistant, board: board}}
}

// Execute asks for a priority based on title and description and applies it.
func (uc *SuggestPriority) Execute(ctx context.Context, in AssistTaskInput) (*AssistTaskOutput, error) {
	return uc.deps.run(ctx, "suggest priority", in.TaskID, func(ctx context.Context, task domain.Task) ([]domain.FieldUpdate, error) {
		p, err := uc.deps.assistant.SuggestPriority(ctx, task.Title, task.Description)
		if err != nil {
			return nil, err
		}
		return []domain.FieldUpdate{domain.SetPriority{Priority: p}}, nil
	})
}

// GenerateDescription replaces a task's description with assistant text.
type GenerateDescription struct {
	deps assistDeps
}

// NewGenerateDescription creates a new GenerateDescription use case.
func NewGenerateDescription(assistant domain.AIAssistant, board BoardDeps) *GenerateDescription {
	return &GenerateDescription{deps: assistDeps{assistant: assistant, board: board}}
}

// Execute asks for a description based on the task title and applies it.
func (uc *GenerateDescription) Execute(ctx context.Context, in AssistTaskInput) (*AssistTaskOutput, error) {
	return uc.deps.run(ctx, "generate description", in.TaskID, func(ctx context.Context, task domain.Task) ([]domain.FieldUpdate, error) {
		desc, err := uc.deps.assistant.GenerateDescription(ctx, task.Title)
		if err != nil {
			return nil, err
		}
		return []domain.FieldUpdate{domain.SetDescription{Description: desc}}, nil
	})
}

// SuggestTags merges assistant-suggested tags into a task's tags.
type SuggestTags struct {
	deps assistDeps
}

// NewSuggestTags creates a new SuggestTags use case.
func NewSuggestTags(assistant domain.AIAssistant, board BoardDeps) *SuggestTags {
	return &SuggestTags{deps: assistDeps{assistant: assistant, board: board}}
}

// Execute asks for tags based on title and description and merges them,
// skipping blanks and duplicates.
func (uc *SuggestTags) Execute(ctx context.Context, in AssistTaskInput) (*AssistTaskOutput, error) {
	return uc.deps.run(ctx, "suggest tags", in.TaskID, func(ctx context.Context, task domain.Task) ([]domain.FieldUpdate, error) {
		tags, err := uc.deps.assistant.SuggestTags(ctx, task.Title, task.Description)
		if err != nil {
			return nil, err
		}
		return []domain.FieldUpdate{domain.AddTags{Tags: tags}}, nil
	})
}

// ProjectInsightOutput contains the assistant's insight and the summary it was given.
type ProjectInsightOutput struct {
	Insight string
	Summary domain.BoardSummary
}

// ProjectInsight asks the assistant for one insight about the whole board.
type ProjectInsight struct {
	assistant domain.AIAssistant
	board     BoardDeps
}

// NewProjectInsight creates a new ProjectInsight use case.
func NewProjectInsight(assistant domain.AIAssistant, board BoardDeps) *ProjectInsight {
	return &ProjectInsight{assistant: assistant, board: board}
}

// Execute summarizes the board and asks for an insight. The board is not changed.
func (uc *ProjectInsight) Execute(ctx context.Context) (*ProjectInsightOutput, error) {
	if uc.assistant == nil {
		return nil, domain.ErrNoAssistant
	}
	e, err := uc.board.open()
	if err != nil {
		return nil, err
	}
	summary := domain.Summarize(e.Snapshot(), domain.DateOf(uc.board.Clock.Now()), e.Options().CompletionColumn)
	insight, err := uc.assistant.GenerateProjectInsight(ctx, summary)
	if err != nil {
		uc.board.logger().Warn("", "ai", fmt.Sprintf("project insight: %v", err))
		return nil, err
	}
	return &ProjectInsightOutput{Insight: insight, Summary: summary}, nil
}
