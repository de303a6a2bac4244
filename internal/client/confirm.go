package client

import (
	"context"
	"sync"
)

type PendingAction int

const (
	ActionNone PendingAction = iota
	ActionDelete
	ActionUnbind
)

type destructiveClient interface {
	DeleteNode(ctx context.Context, nodeID string) error
	UnbindPerson(ctx context.Context, nodeID, personID string) error
	Cache() *Cache
}

// Confirmer es la capa de confirmación: los intents destructivos quedan
// pendientes hasta que el usuario confirma. Es el único lugar desde donde
// se disparan borrado y liberación.
type Confirmer struct {
	mu             sync.Mutex
	client         destructiveClient
	pending        PendingAction
	targetID       string
	targetPersonID string
}

func NewConfirmer(client destructiveClient) *Confirmer {
	return &Confirmer{client: client}
}

func (c *Confirmer) Pending() PendingAction {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending
}

func (c *Confirmer) RequestDelete(nodeID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.pending = ActionDelete
	c.targetID = nodeID
	c.targetPersonID = ""
}

// RequestUnbind deja pendiente la liberación. Sin personID no hay nada que
// liberar: el puesto está vacante y la acción es no-op.
func (c *Confirmer) RequestUnbind(nodeID, personID string) {
	if personID == "" {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.pending = ActionUnbind
	c.targetID = nodeID
	c.targetPersonID = personID
}

// Confirm ejecuta la acción pendiente y la descarta. Si anda, invalida el
// cache del organigrama para que el próximo fetch traiga el bosque nuevo.
func (c *Confirmer) Confirm(ctx context.Context) error {
	c.mu.Lock()
	action := c.pending
	nodeID := c.targetID
	personID := c.targetPersonID
	c.pending = ActionNone
	c.targetID = ""
	c.targetPersonID = ""
	c.mu.Unlock()

	var err error
	switch action {
	case ActionDelete:
		err = c.client.DeleteNode(ctx, nodeID)
	case ActionUnbind:
		err = c.client.UnbindPerson(ctx, nodeID, personID)
	case ActionNone:
		return nil
	}

	if err != nil {
		return err
	}

	c.client.Cache().Invalidate(QueryOrganigrama)

	return nil
}

// Cancel descarta lo pendiente sin efectos.
func (c *Confirmer) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.pending = ActionNone
	c.targetID = ""
	c.targetPersonID = ""
}
