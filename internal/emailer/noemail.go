package emailer

// NoEmail discards all messages. Used when no delivery backend is configured.
type NoEmail struct {
}

func (s *NoEmail) Send(toAddress, toName string, msg Message) error {
	return nil
}
