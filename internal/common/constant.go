package common

// CredentialSlotKey is the fixed key under which the client persists its
// access token in the local metadata store. It is written on login, erased
// on logout or credential rejection, and read once during rehydration.
const CredentialSlotKey = "access_token"
