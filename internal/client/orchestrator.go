package client

import (
	"context"
	"fmt"
	"sync"

	"fieldservice-golang/internal/storage"
)

// Estados del flujo "crear puesto (y opcionalmente asociar usuario)".
type FlowState int

const (
	StateIdle FlowState = iota
	StateSubmitting
	StateBindingPerson
	StateDone
	StateDoneWithWarning
)

func (s FlowState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSubmitting:
		return "submitting"
	case StateBindingPerson:
		return "binding_person"
	case StateDone:
		return "done"
	case StateDoneWithWarning:
		return "done_with_warning"
	}
	return "unknown"
}

// CreateFlowRequest es lo que junta el modal de alta: cargo y área
// obligatorios, parent para colgar de un nodo, y PersonID si el usuario
// eligió "crear y asignar" en el mismo paso.
type CreateFlowRequest struct {
	Name     string
	Area     string
	Parent   string
	PersonID string
}

// CreateFlowResult termina en Done o DoneWithWarning. Warning queda seteado
// cuando el alta anduvo pero la asociación falló: el nodo existe vacante y
// el usuario tiene que reintentar la asociación por separado, no se hace
// rollback del nodo creado.
type CreateFlowResult struct {
	State   FlowState
	Node    *storage.CreatedNode
	Warning string
}

type mutationClient interface {
	CreateNode(ctx context.Context, req storage.CreateNodeRequest) (*storage.CreatedNode, error)
	BindPerson(ctx context.Context, nodeID, personID string) error
	Cache() *Cache
}

// Orchestrator secuencia las llamadas dependientes del alta y maneja la
// invalidación del cache al terminar. Un solo flujo en vuelo por
// instancia: mientras está Submitting el submit queda deshabilitado, que
// es la única protección contra el doble click.
type Orchestrator struct {
	mu     sync.Mutex
	client mutationClient
	state  FlowState
}

func NewOrchestrator(client mutationClient) *Orchestrator {
	return &Orchestrator{client: client, state: StateIdle}
}

func (o *Orchestrator) State() FlowState {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

var ErrFlowInFlight = fmt.Errorf("ya hay un alta en curso")

// Run ejecuta el flujo completo. Si el alta falla vuelve a Idle y el error
// se muestra tal cual (sin retry automático). Si el alta anduvo, el cache
// del organigrama se invalida siempre, incluso con warning: el árbol de
// áreas puede traer un área nueva.
func (o *Orchestrator) Run(ctx context.Context, req CreateFlowRequest) (*CreateFlowResult, error) {
	o.mu.Lock()
	if o.state == StateSubmitting || o.state == StateBindingPerson {
		o.mu.Unlock()
		return nil, ErrFlowInFlight
	}
	o.state = StateSubmitting
	o.mu.Unlock()

	node, err := o.client.CreateNode(ctx, storage.CreateNodeRequest{
		Name:   req.Name,
		Area:   req.Area,
		Parent: req.Parent,
	})
	if err != nil {
		o.setState(StateIdle)
		return nil, err
	}

	result := &CreateFlowResult{Node: node}

	if req.PersonID != "" {
		o.setState(StateBindingPerson)

		if err := o.client.BindPerson(ctx, node.ID, req.PersonID); err != nil {
			// el nodo quedó creado y vacante, nada que revertir
			result.State = StateDoneWithWarning
			result.Warning = "El puesto se creó pero no se pudo asociar el usuario, reintentar la asociación"
			o.finish(StateDoneWithWarning)
			return result, nil
		}
	}

	result.State = StateDone
	o.finish(StateDone)

	return result, nil
}

func (o *Orchestrator) setState(s FlowState) {
	o.mu.Lock()
	o.state = s
	o.mu.Unlock()
}

func (o *Orchestrator) finish(s FlowState) {
	o.setState(s)
	o.client.Cache().Invalidate(QueryOrganigrama)
}
