package client

import "sync"

// QueryOrganigrama es la clave bajo la que se cachea el bosque completo.
const QueryOrganigrama = "organigrama"

// Cache reemplaza el cache global implícito del data-fetching del
// dashboard por uno explícito por clave. Un solo escritor por clave: las
// mutaciones invalidan y el próximo Get del fetch vuelve a poblar. No hay
// parches parciales, el valor se reemplaza entero.
type Cache struct {
	mu      sync.Mutex
	entries map[string]interface{}
	subs    map[string][]func()
}

func NewCache() *Cache {
	return &Cache{
		entries: make(map[string]interface{}),
		subs:    make(map[string][]func()),
	}
}

func (c *Cache) Get(key string) (interface{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	v, ok := c.entries[key]
	return v, ok
}

func (c *Cache) Set(key string, value interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = value
}

// Invalidate borra la entrada y avisa a los suscriptores para que
// refetcheen. Los callbacks corren fuera del lock.
func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	subs := make([]func(), len(c.subs[key]))
	copy(subs, c.subs[key])
	c.mu.Unlock()

	for _, fn := range subs {
		fn()
	}
}

func (c *Cache) Subscribe(key string, fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.subs[key] = append(c.subs[key], fn)
}
