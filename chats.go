package geminikit

import (
	"context"
	"fmt"
	"iter"
	"sync"
)

// Chats creates chat sessions.
type Chats struct {
	models *Models
}

// Create builds a chat session over the given model. History may seed prior
// turns; it must start with a user turn and contain only user/model roles.
func (c *Chats) Create(model string, config *GenerateContentConfig, history []*Content) (*Chat, error) {
	if err := validateHistory(history); err != nil {
		return nil, err
	}
	return &Chat{
		models:  c.models,
		model:   model,
		config:  config,
		history: append([]*Content(nil), history...),
	}, nil
}

// Chat is a history-accumulating conversation. Sends are serialized: a
// second Send issued while one is in flight waits for it, so histories never
// interleave. History reads take a separate lock, so inspecting history from
// inside a streaming loop never blocks.
type Chat struct {
	models *Models
	model  string
	config *GenerateContentConfig

	sendMu sync.Mutex

	histMu  sync.Mutex
	history []*Content
}

func validateHistory(history []*Content) error {
	if len(history) == 0 {
		return nil
	}
	if history[0].Role != RoleUser {
		return fmt.Errorf("geminikit: chat history must start with a %q turn, got %q", RoleUser, history[0].Role)
	}
	for i, content := range history {
		if content.Role != RoleUser && content.Role != RoleModel {
			return fmt.Errorf("geminikit: chat history turn %d has invalid role %q", i, content.Role)
		}
	}
	return nil
}

// validModelContent reports whether a model turn survives curation: it must
// carry parts, and no text part may be empty while carrying nothing else.
func validModelContent(content *Content) bool {
	if content == nil || len(content.Parts) == 0 {
		return false
	}
	for _, part := range content.Parts {
		if part == nil {
			return false
		}
		if part.Text == "" && part.InlineData == nil && part.FileData == nil &&
			part.FunctionCall == nil && part.FunctionResponse == nil &&
			part.ExecutableCode == nil && part.CodeExecutionResult == nil &&
			!part.Thought {
			return false
		}
	}
	return true
}

// curatedHistory drops every turn group whose model output was filtered or
// empty. A group is one user turn plus all model turns that follow it; if
// any of those model turns is invalid the whole group goes, user turn
// included. The backend wants clean alternating history even when a prior
// model turn was suppressed by safety filtering.
func curatedHistory(history []*Content) []*Content {
	var curated []*Content
	i := 0
	for i < len(history) {
		group := []*Content{history[i]}
		valid := true
		j := i + 1
		for j < len(history) && history[j].Role == RoleModel {
			group = append(group, history[j])
			if !validModelContent(history[j]) {
				valid = false
			}
			j++
		}
		if valid {
			curated = append(curated, group...)
		}
		i = j
	}
	return curated
}

// recordTurn appends the user turn and the model's reply to history. A
// response with no content still records a synthetic empty model turn to
// keep the history alternating.
func (c *Chat) recordTurn(user *Content, resp *GenerateContentResponse) {
	var modelTurn *Content
	if len(resp.Candidates) > 0 && resp.Candidates[0].Content != nil {
		modelTurn = resp.Candidates[0].Content
	} else {
		modelTurn = &Content{Role: RoleModel}
	}
	c.histMu.Lock()
	c.history = append(c.history, user, modelTurn)
	c.histMu.Unlock()
}

// requestContents snapshots the curated history with the new user turn
// appended.
func (c *Chat) requestContents(user *Content) []*Content {
	c.histMu.Lock()
	defer c.histMu.Unlock()
	return append(curatedHistory(c.history), user)
}

// turnConfig picks the per-call override when given, else the session default.
func (c *Chat) turnConfig(override *GenerateContentConfig) *GenerateContentConfig {
	if override != nil {
		return override
	}
	return c.config
}

// History returns a copy of the full accumulated history.
func (c *Chat) History() []*Content {
	c.histMu.Lock()
	defer c.histMu.Unlock()
	return append([]*Content(nil), c.history...)
}

// Send submits one user message and waits for the full response.
func (c *Chat) Send(ctx context.Context, parts ...*Part) (*GenerateContentResponse, error) {
	return c.SendWithConfig(ctx, nil, parts...)
}

// SendWithConfig is Send with a config that replaces the session default for
// this turn only. A nil config keeps the default.
func (c *Chat) SendWithConfig(ctx context.Context, config *GenerateContentConfig, parts ...*Part) (*GenerateContentResponse, error) {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()

	user := &Content{Role: RoleUser, Parts: parts}
	contents := c.requestContents(user)

	resp, err := c.models.GenerateContent(ctx, c.model, contents, c.turnConfig(config))
	if err != nil {
		return nil, err
	}

	c.recordTurn(user, resp)
	return resp, nil
}

// SendStream submits one user message and yields response chunks as they
// arrive. The turn is recorded in history only once the caller has drained
// the sequence; abandoning iteration early records nothing.
func (c *Chat) SendStream(ctx context.Context, parts ...*Part) iter.Seq2[*GenerateContentResponse, error] {
	return c.SendStreamWithConfig(ctx, nil, parts...)
}

// SendStreamWithConfig is SendStream with a config that replaces the session
// default for this turn only. A nil config keeps the default.
func (c *Chat) SendStreamWithConfig(ctx context.Context, config *GenerateContentConfig, parts ...*Part) iter.Seq2[*GenerateContentResponse, error] {
	return func(yield func(*GenerateContentResponse, error) bool) {
		c.sendMu.Lock()
		defer c.sendMu.Unlock()

		user := &Content{Role: RoleUser, Parts: parts}
		contents := c.requestContents(user)

		// Merge streamed parts so the recorded model turn holds the
		// whole reply, not just the last chunk.
		var merged *GenerateContentResponse
		drained := true
		for resp, err := range c.models.GenerateContentStream(ctx, c.model, contents, c.turnConfig(config)) {
			if err != nil {
				yield(nil, err)
				return
			}
			merged = mergeStreamResponse(merged, resp)
			if !yield(resp, nil) {
				drained = false
				break
			}
		}
		if drained && merged != nil {
			c.recordTurn(user, merged)
		}
	}
}

// mergeStreamResponse folds a stream chunk into the accumulated response:
// first-candidate parts concatenate, everything else takes the latest value.
func mergeStreamResponse(acc, chunk *GenerateContentResponse) *GenerateContentResponse {
	if acc == nil {
		copied := *chunk
		if len(chunk.Candidates) > 0 && chunk.Candidates[0].Content != nil {
			candidate := *chunk.Candidates[0]
			content := *candidate.Content
			content.Parts = append([]*Part(nil), content.Parts...)
			candidate.Content = &content
			copied.Candidates = append([]*Candidate{&candidate}, chunk.Candidates[1:]...)
		}
		return &copied
	}
	if chunk.UsageMetadata != nil {
		acc.UsageMetadata = chunk.UsageMetadata
	}
	if len(chunk.Candidates) == 0 {
		return acc
	}
	incoming := chunk.Candidates[0]
	if len(acc.Candidates) == 0 {
		acc.Candidates = []*Candidate{incoming}
		return acc
	}
	current := acc.Candidates[0]
	if incoming.FinishReason != "" {
		current.FinishReason = incoming.FinishReason
	}
	if incoming.Content != nil {
		if current.Content == nil {
			current.Content = &Content{Role: incoming.Content.Role}
		}
		current.Content.Parts = append(current.Content.Parts, incoming.Content.Parts...)
	}
	return acc
}
