package handler

// Stage identifies a step of the request lifecycle.
type Stage uint8

const (
	StageMatching Stage = iota
	StageBefore
	StageHandler
	StageAfter
	StageFinally
	StageDone
)

var stageNames = [...]string{
	StageMatching: "matching",
	StageBefore:   "before",
	StageHandler:  "handler",
	StageAfter:    "after",
	StageFinally:  "finally",
	StageDone:     "done",
}

func (s Stage) String() string {
	if int(s) < len(stageNames) {
		return stageNames[s]
	}
	return "unknown"
}
