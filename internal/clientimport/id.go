package clientimport

import "github.com/google/uuid"

// Deterministic IDs so repeated imports of the same export are idempotent:
// the same tenant + name always maps to the same uuid.

func ZoneID(ns uuid.UUID, tenantID, zoneName string) uuid.UUID {
	return uuid.NewSHA1(ns, []byte("zone:"+tenantID+":"+zoneName))
}

func ClientID(ns uuid.UUID, tenantID, clientName string) uuid.UUID {
	return uuid.NewSHA1(ns, []byte("client:"+tenantID+":"+clientName))
}
