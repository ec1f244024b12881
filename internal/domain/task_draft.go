package domain

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// TaskDraft represents a task to be created from file input.
type TaskDraft struct {
	DueDate     *Date
	Title       string
	Description string
	Column      string // Target column ID (empty = first column)
	Priority    Priority
	Tags        []string
}

// draftFrontmatter is the YAML header of one draft block.
type draftFrontmatter struct {
	Title    string   `yaml:"title"`
	Column   string   `yaml:"column"`
	Priority string   `yaml:"priority"`
	Due      string   `yaml:"due"`
	Tags     []string `yaml:"tags"`
}

// ParseTaskDrafts parses a markdown file containing one or more task definitions.
//
// Format:
//
//	---
//	title: Task Title
//	column: todo
//	priority: High
//	tags: [backend, api]
//	due: 2025-01-31
//	---
//	Description in markdown.
//
//	---
//	title: Second Task
//	---
//
// A "---" line inside a description only starts a new block when the
// following line is a frontmatter key.
func ParseTaskDrafts(content string) ([]TaskDraft, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyFile
	}

	blocks := splitDraftBlocks(content)
	if len(blocks) == 0 {
		return nil, ErrNoTasksInFile
	}

	drafts := make([]TaskDraft, 0, len(blocks))
	for i, block := range blocks {
		draft, err := parseDraftBlock(block)
		if err != nil {
			return nil, fmt.Errorf("task %d: %w", i+1, err)
		}
		drafts = append(drafts, draft)
	}
	return drafts, nil
}

// draftBlock is the raw frontmatter and body of one task.
type draftBlock struct {
	header []string
	body   []string
}

func splitDraftBlocks(content string) []draftBlock {
	lines := strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n")

	var blocks []draftBlock
	var cur *draftBlock
	inHeader := false
	for i, line := range lines {
		if strings.TrimRight(line, " \t") == "---" {
			switch {
			case cur == nil:
				cur = &draftBlock{}
				inHeader = true
			case inHeader:
				inHeader = false
			case i+1 < len(lines) && isFrontmatterKey(lines[i+1]):
				blocks = append(blocks, *cur)
				cur = &draftBlock{}
				inHeader = true
			default:
				cur.body = append(cur.body, line)
			}
			continue
		}
		if cur == nil {
			continue
		}
		if inHeader {
			cur.header = append(cur.header, line)
		} else {
			cur.body = append(cur.body, line)
		}
	}
	if cur != nil {
		blocks = append(blocks, *cur)
	}
	return blocks
}

func isFrontmatterKey(line string) bool {
	for _, key := range []string{"title:", "column:", "priority:", "tags:", "due:"} {
		if strings.HasPrefix(line, key) {
			return true
		}
	}
	return false
}

func parseDraftBlock(block draftBlock) (TaskDraft, error) {
	var fm draftFrontmatter
	if err := yaml.Unmarshal([]byte(strings.Join(block.header, "\n")), &fm); err != nil {
		return TaskDraft{}, fmt.Errorf("parse frontmatter: %w", err)
	}

	title := strings.TrimSpace(fm.Title)
	if title == "" {
		return TaskDraft{}, ErrEmptyTitle
	}

	draft := TaskDraft{
		Title:       title,
		Column:      strings.TrimSpace(fm.Column),
		Tags:        MergeTags(nil, fm.Tags),
		Description: strings.Trim(strings.Join(block.body, "\n"), "\n"),
	}
	if fm.Priority != "" {
		p, err := ParsePriority(fm.Priority)
		if err != nil {
			return TaskDraft{}, err
		}
		draft.Priority = p
	}
	if fm.Due != "" {
		d, err := ParseDate(fm.Due)
		if err != nil {
			return TaskDraft{}, err
		}
		draft.DueDate = &d
	}
	return draft, nil
}

// Updates returns the field updates that turn a freshly added task into the draft.
func (d TaskDraft) Updates() []FieldUpdate {
	var updates []FieldUpdate
	if d.Description != "" {
		updates = append(updates, SetDescription{Description: d.Description})
	}
	if d.Priority != "" {
		updates = append(updates, SetPriority{Priority: d.Priority})
	}
	if len(d.Tags) > 0 {
		updates = append(updates, SetTags{Tags: d.Tags})
	}
	if d.DueDate != nil {
		updates = append(updates, SetDueDate{Date: d.DueDate})
	}
	return updates
}
