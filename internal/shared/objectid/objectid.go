// Package objectid generates and validates record identifiers.
//
// Every store backend uses the 24-character hexadecimal ObjectID format so
// that identifier validity is the same regardless of where records live.
package objectid

import "go.mongodb.org/mongo-driver/v2/bson"

// New returns a fresh identifier in its string form.
func New() string {
	return bson.NewObjectID().Hex()
}

// Valid reports whether s is a structurally valid identifier.
func Valid(s string) bool {
	_, err := bson.ObjectIDFromHex(s)
	return err == nil
}

// Parse converts s into a bson.ObjectID. ok is false for malformed input.
func Parse(s string) (bson.ObjectID, bool) {
	id, err := bson.ObjectIDFromHex(s)
	if err != nil {
		return bson.NilObjectID, false
	}
	return id, true
}
