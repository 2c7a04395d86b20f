package docs

type StatusKind string

const (
	StatusNone    StatusKind = ""
	StatusLoading StatusKind = "loading"
	StatusSuccess StatusKind = "success"
	StatusError   StatusKind = "error"
)

type Status struct {
	Kind StatusKind
	Text string
}

func loading(text string) Status { return Status{Kind: StatusLoading, Text: text} }
func success(text string) Status { return Status{Kind: StatusSuccess, Text: text} }
func failed(text string) Status  { return Status{Kind: StatusError, Text: text} }
