package ports

// PasswordHasher is the one-way hashing collaborator. The algorithm and
// cost factor are owned by the implementation; the core never sees or
// stores a plaintext password.
type PasswordHasher interface {
	Hash(plain string) (string, error)
}
