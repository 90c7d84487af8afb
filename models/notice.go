package models

// NoticeLevel defines the set of allowed levels for a Notice.
type NoticeLevel string

const (
	NoticeSuccess NoticeLevel = "success"
	NoticeError   NoticeLevel = "error"
)

// Notice is a short user-facing notification shown once after a workflow
// finishes.
type Notice struct {
	Level   NoticeLevel `json:"level"`
	Message string      `json:"message"`
}

func SuccessNotice(message string) *Notice {
	return &Notice{Level: NoticeSuccess, Message: message}
}

func ErrorNotice(message string) *Notice {
	return &Notice{Level: NoticeError, Message: message}
}
