package form

import (
	"errors"
	"strings"
)

const (
	msgMissingFields        = "Veuillez remplir tous les champs requis"
	msgSaveFailed           = "Erreur lors de l'enregistrement"
	msgHeaderMismatchPrefix = "Oups, le formulaire a changé ! Il faut mettre à jour cette app pour ne pas y ajouter des données mal formatées dans le spreadsheet.\n\nDétails techniques : "
	MsgSaved                = "Achat enregistré avec succès !"
)

var (
	ErrEndpointNotConfigured = errors.New("URL du script non configurée. Utilisez le paramètre ?scriptUrl=... ou configurez SCRIPT_URL")
	ErrEndpointInvalid       = errors.New("URL du script invalide. Doit commencer par http:// ou https://")
	ErrSubmissionInFlight    = errors.New("un envoi est déjà en cours")
)

// ValidationError lists the required draft fields that are empty.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return msgMissingFields
}

// RemoteError is a failure reported by the ingest endpoint in its response body.
type RemoteError struct {
	Message  string
	Expected []string
	Actual   []string
}

func (e *RemoteError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = msgSaveFailed
	}
	if e.HeaderMismatch() {
		return msgHeaderMismatchPrefix + msg
	}
	return msg
}

func (e *RemoteError) HeaderMismatch() bool {
	return strings.Contains(e.Message, "Header mismatch")
}

// TransportError wraps network and response decoding failures.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return msgSaveFailed
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
