package pipeline

import "fmt"

type (
	// ProducerError marks a failure raised while iterating the source
	ProducerError struct {
		Err error
	}

	// ConsumerError marks a failure raised while appending to the destination
	ConsumerError struct {
		Err error
	}
)

func (e *ProducerError) Error() string {
	return fmt.Sprintf("producer failed: [%s]", e.Err)
}

func (e *ProducerError) Unwrap() error {
	return e.Err
}

func (e *ConsumerError) Error() string {
	return fmt.Sprintf("consumer failed: [%s]", e.Err)
}

func (e *ConsumerError) Unwrap() error {
	return e.Err
}
