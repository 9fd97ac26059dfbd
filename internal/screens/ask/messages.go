package ask

import (
	"time"

	"github.com/abhisek/tutor/internal/tutor"
)

// answerMsg is sent when a submission has been answered or has failed.
type answerMsg struct {
	Answer *tutor.Answer
	Err    error
}

// spinnerTickMsg is sent at short intervals to animate the loading spinner.
type spinnerTickMsg time.Time
