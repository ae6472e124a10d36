package geo

// RequestMeta is the ambient request context a session resolves the subject
// IP from when no override is set: the forwarded-for value injected by a
// proxy or load balancer, and the peer address of the direct connection.
// The embedding application fills it in; an empty value means "not present".
type RequestMeta struct {
	ForwardedFor string
	RemoteAddr   string
}

// subjectIP resolves the IP address all lookups are performed against.
// Precedence: explicit override, then forwarded-for, then peer address.
// No syntax validation happens here; whatever string wins is passed to the
// provider unmodified.
//
// Callers must hold s.mu.
func (s *Session) subjectIP() (string, bool) {
	if s.override != "" {
		return s.override, true
	}
	if s.source.ForwardedFor != "" {
		return s.source.ForwardedFor, true
	}
	if s.source.RemoteAddr != "" {
		return s.source.RemoteAddr, true
	}
	return "", false
}

// SubjectIP reports which IP the next lookup would be performed against.
// The second return is false when neither an override nor request context
// is available.
func (s *Session) SubjectIP() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.subjectIP()
}
