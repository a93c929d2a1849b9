package pw

import (
	"sync"
	"time"
)

// DefaultExpiry is the age after which a stored password is reported as
// expired: 30 days.
const DefaultExpiry = 30 * 24 * time.Hour

// Options tunes the credential service. Zero fields take their defaults.
type Options struct {
	SimilarityThreshold float64
	Expiry              time.Duration
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		SimilarityThreshold: DefaultSimilarityThreshold,
		Expiry:              DefaultExpiry,
	}
}

// CredentialService owns the state of a password manager session: the
// master credential, the cached encryption key and the in-memory password
// history. It is constructed once by the application and shared by
// reference. All methods are safe for concurrent use.
type CredentialService struct {
	keys      KeyStore
	encryptor Encryptor
	ledger    Ledger
	logger    Logger
	clock     Clock
	random    RandomSource
	opts      Options

	mu      sync.Mutex
	master  *MasterAuth
	history *PasswordHistory
	key     EncryptionKey
}

// NewCredentialService creates a CredentialService with the provided dependencies.
func NewCredentialService(keys KeyStore, encryptor Encryptor, ledger Ledger, logger Logger, clock Clock, random RandomSource, opts Options) *CredentialService {
	defaults := DefaultOptions()
	if opts.SimilarityThreshold == 0 {
		opts.SimilarityThreshold = defaults.SimilarityThreshold
	}
	if opts.Expiry == 0 {
		opts.Expiry = defaults.Expiry
	}

	return &CredentialService{
		keys:      keys,
		encryptor: encryptor,
		ledger:    ledger,
		logger:    logger,
		clock:     clock,
		random:    random,
		opts:      opts,
		master:    NewMasterAuth(random),
		history:   NewPasswordHistory(),
	}
}

// Generate returns a random password satisfying policy.
func (s *CredentialService) Generate(length int, policy CharacterPolicy) (string, error) {
	return Generate(length, policy, s.random)
}

// Score rates a password.
func (s *CredentialService) Score(password string) Strength {
	return Score(password)
}

// IsSimilar checks candidate against the session history using the
// configured threshold.
func (s *CredentialService) IsSimilar(candidate string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.IsSimilar(candidate, s.opts.SimilarityThreshold)
}

// History returns the passwords accepted in this session, oldest first.
func (s *CredentialService) History() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.Entries()
}

// SetMasterPassword replaces the session's master credential.
func (s *CredentialService) SetMasterPassword(plaintext string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.master.SetPassword(plaintext); err != nil {
		s.logger.Warn("master password rejected", "error", err)
		return err
	}
	s.logger.Info("master password set")
	return nil
}

// VerifyMasterPassword checks plaintext against the session's master
// credential. It returns ErrMasterPasswordNotSet if none was set.
func (s *CredentialService) VerifyMasterPassword(plaintext string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.master.Verify(plaintext)
}

// GenerateRequest describes one generate-and-accept round.
type GenerateRequest struct {
	Length int
	Policy CharacterPolicy
	// Save stores the password in the ledger once it is accepted.
	Save bool
}

// GenerateResult is the outcome of NewPassword.
type GenerateResult struct {
	Password string
	Strength Strength
	// Similar is set when the password was rejected as a near-duplicate of
	// one in the history. A similar password is neither remembered nor saved.
	Similar bool
	Saved   bool
}

// NewPassword generates a password, rates it and checks it against the
// history. An accepted password is remembered and, if requested, stored.
func (s *CredentialService) NewPassword(req GenerateRequest) (*GenerateResult, error) {
	password, err := Generate(req.Length, req.Policy, s.random)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	result := &GenerateResult{Password: password, Strength: Score(password)}
	if s.history.IsSimilar(password, s.opts.SimilarityThreshold) {
		s.logger.Warn("generated password is too similar to a previous one", "history", s.history.Len())
		result.Similar = true
		return result, nil
	}

	s.history.Add(password)
	if req.Save {
		if err := s.store(password); err != nil {
			return nil, err
		}
		result.Saved = true
	}

	s.logger.Debug("password generated", "length", req.Length, "strength", string(result.Strength), "saved", result.Saved)
	return result, nil
}

// UnlockCredentials verifies the master password and, on success, loads
// every stored credential.
func (s *CredentialService) UnlockCredentials(master string) (*LoadResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ok, err := s.master.Verify(master)
	if err != nil {
		return nil, err
	}
	if !ok {
		s.logger.Warn("incorrect master password")
		return nil, ErrMasterPasswordMismatch
	}
	return s.load()
}
