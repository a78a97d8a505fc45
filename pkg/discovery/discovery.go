package discovery

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/example/snackmarket/pkg/config"
	clientv3 "go.etcd.io/etcd/client/v3"
)

// Registry announces the marketplace API in etcd so edge proxies can route
// to live instances. Registration rides on a lease; if the process dies the
// entry expires with the lease TTL.
type Registry struct {
	client *clientv3.Client
	config *config.EtcdConfig
}

type Instance struct {
	Name         string    `json:"name"`
	Host         string    `json:"host"`
	Port         int       `json:"port"`
	RegisteredAt time.Time `json:"registered_at"`
}

func (i *Instance) key(prefix string) string {
	return fmt.Sprintf("%s%s/%s:%d", prefix, i.Name, i.Host, i.Port)
}

func NewRegistry(cfg *config.EtcdConfig) (*Registry, error) {
	cli, err := clientv3.New(clientv3.Config{
		Endpoints:   cfg.Endpoints,
		DialTimeout: cfg.DialTimeout * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to etcd: %w", err)
	}

	return &Registry{
		client: cli,
		config: cfg,
	}, nil
}

// Register writes the instance under the configured prefix with a
// kept-alive lease.
func (r *Registry) Register(ctx context.Context, instance *Instance) error {
	instance.RegisteredAt = time.Now()
	value, err := json.Marshal(instance)
	if err != nil {
		return err
	}

	ttl := r.config.LeaseTTL
	if ttl <= 0 {
		ttl = 30
	}
	lease, err := r.client.Grant(ctx, ttl)
	if err != nil {
		return fmt.Errorf("failed to create lease: %w", err)
	}

	if _, err := r.client.Put(ctx, instance.key(r.config.Prefix), string(value), clientv3.WithLease(lease.ID)); err != nil {
		return fmt.Errorf("failed to register instance: %w", err)
	}

	ch, err := r.client.KeepAlive(ctx, lease.ID)
	if err != nil {
		return fmt.Errorf("failed to keep lease alive: %w", err)
	}

	go func() {
		for range ch {
		}
	}()

	return nil
}

// Instances lists the registered instances of a service.
func (r *Registry) Instances(ctx context.Context, name string) ([]*Instance, error) {
	resp, err := r.client.Get(ctx, r.config.Prefix+name+"/", clientv3.WithPrefix())
	if err != nil {
		return nil, fmt.Errorf("failed to list instances: %w", err)
	}

	var instances []*Instance
	for _, kv := range resp.Kvs {
		var inst Instance
		if err := json.Unmarshal(kv.Value, &inst); err != nil {
			continue
		}
		instances = append(instances, &inst)
	}
	return instances, nil
}

func (r *Registry) Deregister(ctx context.Context, instance *Instance) error {
	if _, err := r.client.Delete(ctx, instance.key(r.config.Prefix)); err != nil {
		return fmt.Errorf("failed to deregister instance: %w", err)
	}
	return nil
}

func (r *Registry) Close() error {
	return r.client.Close()
}
