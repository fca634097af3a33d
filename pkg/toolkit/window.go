package toolkit

// IsInTimeRange reports whether the current unix time is strictly after
// validFrom and strictly before validUntil. A nil or zero bound is open.
func (s *Service) IsInTimeRange(validFrom, validUntil *int64) bool {
	now := s.cfg.Clock.Now().Unix()

	if validFrom != nil && *validFrom != 0 && now <= *validFrom {
		return false
	}
	if validUntil != nil && *validUntil != 0 && now >= *validUntil {
		return false
	}
	return true
}
