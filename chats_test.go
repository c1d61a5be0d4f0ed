package geminikit

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func userTurn(text string) *Content {
	return &Content{Role: RoleUser, Parts: []*Part{Text(text)}}
}

func modelTurn(text string) *Content {
	return &Content{Role: RoleModel, Parts: []*Part{Text(text)}}
}

func TestValidateHistory(t *testing.T) {
	tests := []struct {
		name    string
		history []*Content
		wantErr string
	}{
		{name: "empty is valid"},
		{name: "user then model", history: []*Content{userTurn("q"), modelTurn("a")}},
		{
			name:    "must start with user",
			history: []*Content{modelTurn("a")},
			wantErr: "must start with",
		},
		{
			name:    "unknown role",
			history: []*Content{userTurn("q"), {Role: "system"}},
			wantErr: "invalid role",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateHistory(tt.history)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestCuratedHistory(t *testing.T) {
	t.Run("valid groups pass through", func(t *testing.T) {
		history := []*Content{userTurn("q1"), modelTurn("a1"), userTurn("q2"), modelTurn("a2")}
		assert.Equal(t, history, curatedHistory(history))
	})

	t.Run("invalid model turn drops the whole group", func(t *testing.T) {
		emptyModel := &Content{Role: RoleModel}
		history := []*Content{
			userTurn("q1"), emptyModel,
			userTurn("q2"), modelTurn("a2"),
		}
		assert.Equal(t, []*Content{history[2], history[3]}, curatedHistory(history))
	})

	t.Run("one bad model turn poisons its group's siblings", func(t *testing.T) {
		history := []*Content{
			userTurn("q1"), modelTurn("good"), {Role: RoleModel, Parts: []*Part{{}}},
		}
		assert.Empty(t, curatedHistory(history))
	})

	t.Run("dangling user turn survives", func(t *testing.T) {
		history := []*Content{userTurn("q1")}
		assert.Equal(t, history, curatedHistory(history))
	})

	t.Run("idempotent", func(t *testing.T) {
		history := []*Content{
			userTurn("q1"), &Content{Role: RoleModel},
			userTurn("q2"), modelTurn("a2"),
		}
		once := curatedHistory(history)
		assert.Equal(t, once, curatedHistory(once))
	})
}

func TestChatSend(t *testing.T) {
	var gotContents [][]any
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		contents, _ := body["contents"].([]any)
		gotContents = append(gotContents, contents)

		_ = json.NewEncoder(w).Encode(map[string]any{
			"candidates": []any{map[string]any{
				"content": map[string]any{
					"role":  "model",
					"parts": []any{map[string]any{"text": fmt.Sprintf("reply %d", len(gotContents))}},
				},
			}},
		})
	}))

	chat, err := client.Chats.Create("gemini-2.0-flash", nil, nil)
	require.NoError(t, err)

	resp, err := chat.Send(context.Background(), Text("first"))
	require.NoError(t, err)
	assert.Equal(t, "reply 1", resp.Text())

	_, err = chat.Send(context.Background(), Text("second"))
	require.NoError(t, err)

	require.Len(t, gotContents, 2)
	assert.Len(t, gotContents[0], 1, "first send carries only the new turn")
	assert.Len(t, gotContents[1], 3, "second send carries prior user+model turns")

	history := chat.History()
	require.Len(t, history, 4)
	assert.Equal(t, RoleUser, history[0].Role)
	assert.Equal(t, RoleModel, history[1].Role)
}

func TestChatSend_EmptyCandidateRecordsSyntheticTurn(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{})
	}))

	chat, err := client.Chats.Create("gemini-2.0-flash", nil, nil)
	require.NoError(t, err)

	_, err = chat.Send(context.Background(), Text("hello"))
	require.NoError(t, err)

	history := chat.History()
	require.Len(t, history, 2)
	assert.Equal(t, RoleModel, history[1].Role)
	assert.Empty(t, history[1].Parts)
}

func TestChatSend_Serialized(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"candidates": []any{map[string]any{
				"content": map[string]any{
					"role":  "model",
					"parts": []any{map[string]any{"text": "ok"}},
				},
			}},
		})
	}))

	chat, err := client.Chats.Create("gemini-2.0-flash", nil, nil)
	require.NoError(t, err)

	const sends = 8
	var wg sync.WaitGroup
	for i := 0; i < sends; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, err := chat.Send(context.Background(), Text(fmt.Sprintf("msg %d", n)))
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	history := chat.History()
	require.Len(t, history, sends*2, "every send records exactly one user and one model turn")
	for i, content := range history {
		if i%2 == 0 {
			assert.Equal(t, RoleUser, content.Role, "turn %d", i)
		} else {
			assert.Equal(t, RoleModel, content.Role, "turn %d", i)
		}
	}
}

func TestChatSendStream(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w,
			"data: {\"candidates\": [{\"content\": {\"role\": \"model\", \"parts\": [{\"text\": \"str\"}]}}]}\n\n",
			"data: {\"candidates\": [{\"content\": {\"role\": \"model\", \"parts\": [{\"text\": \"eamed\"}]}}]}\n\n",
		)
	}))

	chat, err := client.Chats.Create("gemini-2.0-flash", nil, nil)
	require.NoError(t, err)

	t.Run("full drain records merged turn", func(t *testing.T) {
		var chunks []string
		for resp, err := range chat.SendStream(context.Background(), Text("go")) {
			require.NoError(t, err)
			chunks = append(chunks, resp.Text())
		}
		assert.Equal(t, []string{"str", "eamed"}, chunks)

		history := chat.History()
		require.Len(t, history, 2)
		var replyText string
		for _, p := range history[1].Parts {
			replyText += p.Text
		}
		assert.Equal(t, "streamed", replyText)
	})

	t.Run("abandoned stream records nothing", func(t *testing.T) {
		before := len(chat.History())
		for range chat.SendStream(context.Background(), Text("go")) {
			break
		}
		assert.Len(t, chat.History(), before, "abandoning iteration must leave history untouched")
	})
}

func TestChatSendStream_HistoryReadableMidStream(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w,
			"data: {\"candidates\": [{\"content\": {\"role\": \"model\", \"parts\": [{\"text\": \"a\"}]}}]}\n\n",
			"data: {\"candidates\": [{\"content\": {\"role\": \"model\", \"parts\": [{\"text\": \"b\"}]}}]}\n\n",
		)
	}))

	chat, err := client.Chats.Create("gemini-2.0-flash", nil, nil)
	require.NoError(t, err)

	done := make(chan int, 1)
	go func() {
		reads := 0
		for _, err := range chat.SendStream(context.Background(), Text("go")) {
			if err != nil {
				break
			}
			// Reading history between chunks must not block on the
			// in-flight send.
			chat.History()
			reads++
		}
		done <- reads
	}()

	select {
	case reads := <-done:
		assert.Equal(t, 2, reads)
	case <-time.After(3 * time.Second):
		t.Fatal("History() blocked while a stream was in flight")
	}

	assert.Len(t, chat.History(), 2, "drained stream still records the turn")
}

func TestChatSendWithConfig_OverridesSessionDefault(t *testing.T) {
	var temps []any
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		gc, _ := body["generationConfig"].(map[string]any)
		temps = append(temps, gc["temperature"])
		_ = json.NewEncoder(w).Encode(map[string]any{
			"candidates": []any{map[string]any{
				"content": map[string]any{
					"role":  "model",
					"parts": []any{map[string]any{"text": "ok"}},
				},
			}},
		})
	}))

	low, high := 0.1, 0.9
	chat, err := client.Chats.Create("gemini-2.0-flash", &GenerateContentConfig{Temperature: &low}, nil)
	require.NoError(t, err)

	_, err = chat.Send(context.Background(), Text("default"))
	require.NoError(t, err)

	_, err = chat.SendWithConfig(context.Background(), &GenerateContentConfig{Temperature: &high}, Text("hotter"))
	require.NoError(t, err)

	for resp, err := range chat.SendStreamWithConfig(context.Background(), &GenerateContentConfig{Temperature: &high}, Text("stream")) {
		require.NoError(t, err)
		_ = resp
	}

	_, err = chat.Send(context.Background(), Text("default again"))
	require.NoError(t, err)

	require.Len(t, temps, 4)
	assert.Equal(t, []any{0.1, 0.9, 0.9, 0.1}, temps, "override applies to its turn only")
}

func TestChatCreate_SeedHistory(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{})
	}))

	_, err := client.Chats.Create("gemini-2.0-flash", nil, []*Content{modelTurn("a")})
	require.Error(t, err)

	chat, err := client.Chats.Create("gemini-2.0-flash", nil, []*Content{userTurn("q"), modelTurn("a")})
	require.NoError(t, err)
	assert.Len(t, chat.History(), 2)
}
