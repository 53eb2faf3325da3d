package components

import (
	"bytes"
	"fmt"

	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/agent"
)

// AgentKeySigner signs wrap-key challenges with a specific key held by a
// running ssh-agent. The key must sign deterministically (Ed25519) for
// Lock and Unlock to derive the same wrap key.
type AgentKeySigner struct {
	client agent.Agent
	key    ssh.PublicKey
}

// NewAgentKeySigner selects the agent identity whose marshalled public
// key matches publicKey.
func NewAgentKeySigner(client agent.Agent, publicKey ssh.PublicKey) (*AgentKeySigner, error) {
	keys, err := client.List()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidData, err)
	}
	want := publicKey.Marshal()
	for _, k := range keys {
		if bytes.Equal(k.Marshal(), want) {
			return &AgentKeySigner{client: client, key: publicKey}, nil
		}
	}
	return nil, fmt.Errorf("%w: key not held by agent", ErrInvalidData)
}

// SignChallenge signs the challenge bytes, returning the raw signature
// blob.
func (s *AgentKeySigner) SignChallenge(challenge []byte) ([]byte, error) {
	sig, err := s.client.Sign(s.key, challenge)
	if err != nil {
		return nil, err
	}
	return sig.Blob, nil
}
