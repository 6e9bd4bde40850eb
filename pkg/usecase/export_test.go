package usecase

// LiveLockCount reports how many per-action lock entries are currently held
func (uc *ExecUseCase) LiveLockCount() int {
	return uc.locks.size()
}

// LiveLockCount reports how many per-key lock entries are currently held
func (uc *PreferenceUseCase) LiveLockCount() int {
	return uc.locks.size()
}
