// Package codec serializes/deserializes a ModelState to an opaque byte
// blob, per spec.md §4.8. The encoding is an internal detail never
// exposed to external clients; only the round-trip law
// (Decode(Encode(state)) == state) is a contract.
//
// The original implementation pickled the Python object graph directly
// (spec.md §9 calls this out as a pattern to re-architect). Go has no
// equivalent ecosystem library in this example pack — no framed-codec
// third-party dependency appears anywhere in the teacher or the rest
// of the pack — so this one component is built on encoding/gob by
// spec mandate, versioned explicitly behind a one-byte header so the
// framing can evolve without breaking old blobs.
package codec

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"fmt"

	"github.com/pajvel/webfut-ratingengine/internal/ratingengine/domain"
)

const formatVersion byte = 1

// wireModelState mirrors domain.ModelState in a gob-friendly shape:
// domain.UnorderedPair/OrderedPair are already plain comparable structs
// so they gob-encode directly as map keys.
type wireModelState struct {
	Players    map[string]domain.PlayerState
	Synergy    map[string]map[domain.UnorderedPair]float64
	Domination map[string]map[domain.OrderedPair]float64
	TierBonus  map[string]float64
}

// Encode serializes a ModelState into a versioned, length-prefixed blob.
func Encode(state *domain.ModelState) ([]byte, error) {
	wire := wireModelState{
		Players:    make(map[string]domain.PlayerState, len(state.Players)),
		Synergy:    state.Interactions.Synergy,
		Domination: state.Interactions.Domination,
		TierBonus:  state.TierBonus,
	}
	for id, p := range state.Players {
		wire.Players[id] = *p
	}

	var body bytes.Buffer
	if err := gob.NewEncoder(&body).Encode(wire); err != nil {
		return nil, fmt.Errorf("ratingengine codec: encode: %w", err)
	}

	var out bytes.Buffer
	out.WriteByte(formatVersion)
	var lenPrefix [4]byte
	binary.BigEndian.PutUint32(lenPrefix[:], uint32(body.Len()))
	out.Write(lenPrefix[:])
	out.Write(body.Bytes())
	return out.Bytes(), nil
}

// Decode deserializes a blob produced by Encode back into a ModelState.
func Decode(blob []byte) (*domain.ModelState, error) {
	if len(blob) < 5 {
		return nil, fmt.Errorf("ratingengine codec: blob too short (%d bytes)", len(blob))
	}
	version := blob[0]
	if version != formatVersion {
		return nil, fmt.Errorf("ratingengine codec: unsupported format version %d", version)
	}
	length := binary.BigEndian.Uint32(blob[1:5])
	body := blob[5:]
	if uint32(len(body)) != length {
		return nil, fmt.Errorf("ratingengine codec: length mismatch, header says %d, got %d", length, len(body))
	}

	var wire wireModelState
	if err := gob.NewDecoder(bytes.NewReader(body)).Decode(&wire); err != nil {
		return nil, fmt.Errorf("ratingengine codec: decode: %w", err)
	}

	state := domain.NewModelState()
	state.TierBonus = wire.TierBonus
	if state.TierBonus == nil {
		state.TierBonus = map[string]float64{}
	}
	for id, p := range wire.Players {
		player := p
		state.Players[id] = &player
	}
	if wire.Synergy != nil {
		state.Interactions.Synergy = wire.Synergy
	}
	if wire.Domination != nil {
		state.Interactions.Domination = wire.Domination
	}
	return state, nil
}
