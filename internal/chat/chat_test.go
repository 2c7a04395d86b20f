package chat_test

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"rag-console/internal/apiclient"
	"rag-console/internal/apitest"
	"rag-console/internal/chat"
	"rag-console/internal/model"
)

// send runs one submit the way the views do: Begin, call, Resolve.
func send(t *testing.T, tr *chat.Transcript, r *chat.Responder, input string) bool {
	t.Helper()
	prompt, ok := tr.Begin(input)
	if !ok {
		return false
	}
	if tr.Pending() != 1 {
		t.Fatalf("expected one thinking entry while in flight, got %d", tr.Pending())
	}
	tr.Resolve(r.Reply(context.Background(), prompt))
	return true
}

func newResponder(t *testing.T) (*chat.Responder, *apitest.Server) {
	t.Helper()
	srv := apitest.New(t)
	return chat.NewResponder(apiclient.New(srv.Root()), zerolog.Nop()), srv
}

func TestSubmit_EmptyPromptAddsNothing(t *testing.T) {
	r, srv := newResponder(t)
	var tr chat.Transcript

	for _, input := range []string{"", "   ", "\t\n"} {
		if send(t, &tr, r, input) {
			t.Fatalf("expected %q to be ignored", input)
		}
	}
	if len(tr.Entries()) != 0 || tr.Revision() != 0 {
		t.Fatalf("expected empty transcript, got %+v", tr.Entries())
	}
	if srv.Count(apitest.RouteChat) != 0 {
		t.Fatalf("expected no chat calls")
	}
}

func TestSubmit_SuccessAppendsUserThenAI(t *testing.T) {
	r, _ := newResponder(t)
	var tr chat.Transcript

	send(t, &tr, r, "  what is RAG?  ")

	msgs := tr.Messages()
	if len(tr.Entries()) != 2 || len(msgs) != 2 {
		t.Fatalf("expected exactly two entries, got %+v", tr.Entries())
	}
	if msgs[0] != (model.ChatMessage{Text: "what is RAG?", Sender: model.SenderUser}) {
		t.Fatalf("unexpected user entry: %+v", msgs[0])
	}
	if msgs[1] != (model.ChatMessage{Text: "echo: what is RAG?", Sender: model.SenderAI}) {
		t.Fatalf("unexpected ai entry: %+v", msgs[1])
	}
	if tr.Pending() != 0 {
		t.Fatalf("thinking entry left behind")
	}
	if tr.Revision() != 3 {
		t.Fatalf("expected three insertions, got %d", tr.Revision())
	}
}

func TestSubmit_HTTPErrorShowsDetail(t *testing.T) {
	r, srv := newResponder(t)
	srv.Fail(apitest.RouteChat, http.StatusInternalServerError, "An error occurred: 'model overloaded'")
	var tr chat.Transcript

	send(t, &tr, r, "hi")

	msgs := tr.Messages()
	if len(msgs) != 2 || msgs[1].Sender != model.SenderAI {
		t.Fatalf("expected user and ai entries, got %+v", msgs)
	}
	if msgs[1].Text != "An error occurred: 'model overloaded'" {
		t.Fatalf("expected server detail, got %q", msgs[1].Text)
	}
	if tr.Pending() != 0 {
		t.Fatalf("thinking entry left behind")
	}
}

func TestSubmit_HTTPErrorWithoutDetailIsGeneric(t *testing.T) {
	r, srv := newResponder(t)
	srv.FailRaw(apitest.RouteChat, http.StatusInternalServerError, `{}`)
	var tr chat.Transcript

	send(t, &tr, r, "hi")

	if got := tr.Messages()[1].Text; got != "An error occurred." {
		t.Fatalf("expected generic text, got %q", got)
	}
}

func TestSubmit_NetworkErrorShowsConnectFailure(t *testing.T) {
	srv := apitest.New(t)
	root := srv.Root()
	srv.Close()
	r := chat.NewResponder(apiclient.New(root), zerolog.Nop())
	var tr chat.Transcript

	send(t, &tr, r, "hi")

	msgs := tr.Messages()
	if len(msgs) != 2 {
		t.Fatalf("expected two entries, got %+v", msgs)
	}
	if !strings.HasPrefix(msgs[1].Text, "Failed to connect to the server: ") {
		t.Fatalf("expected connect failure text, got %q", msgs[1].Text)
	}
	if tr.Pending() != 0 {
		t.Fatalf("thinking entry left behind")
	}
}

func TestResolve_OverlappingRepliesKeepArrivalOrder(t *testing.T) {
	var tr chat.Transcript
	tr.Begin("first")
	tr.Begin("second")
	if tr.Pending() != 2 {
		t.Fatalf("expected two placeholders, got %d", tr.Pending())
	}

	tr.Resolve("reply B")
	tr.Resolve("reply A")

	if tr.Pending() != 0 {
		t.Fatalf("placeholders left behind: %+v", tr.Entries())
	}
	msgs := tr.Messages()
	if msgs[len(msgs)-2].Text != "reply B" || msgs[len(msgs)-1].Text != "reply A" {
		t.Fatalf("replies must appear as they resolve, got %+v", msgs)
	}
}
