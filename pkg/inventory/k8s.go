/*
Copyright © 2025 Verscan Authors
SPDX-License-Identifier: Apache-2.0
*/

package inventory

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	v1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
	"k8s.io/client-go/util/homedir"
)

const nodePageSize = 500

// NodeResolver enumerates cluster nodes as audit targets, addressed by their
// internal IP.
type NodeResolver struct {
	// Kubeconfig is the path to the kubeconfig file. Empty means automatic
	// discovery: KUBECONFIG, ~/.kube/config, then in-cluster config.
	Kubeconfig string

	// LabelSelector filters the nodes to audit.
	LabelSelector string

	// Client overrides the Kubernetes client, for tests.
	Client kubernetes.Interface
}

// Resolve lists cluster nodes and returns their internal addresses, falling
// back to the node name when a node reports no internal IP.
func (r *NodeResolver) Resolve(ctx context.Context) ([]string, error) {
	if r.Client == nil {
		client, err := buildClient(r.Kubeconfig)
		if err != nil {
			return nil, err
		}
		r.Client = client
	}

	var hosts []string
	continueToken := ""
	for {
		list, err := r.Client.CoreV1().Nodes().List(ctx, metav1.ListOptions{
			LabelSelector: r.LabelSelector,
			Limit:         nodePageSize,
			Continue:      continueToken,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to list nodes: %w", err)
		}

		for i := range list.Items {
			hosts = append(hosts, nodeAddress(&list.Items[i]))
		}

		continueToken = list.Continue
		if continueToken == "" {
			break
		}
	}

	slog.Debug("resolved cluster nodes",
		slog.Int("count", len(hosts)),
		slog.String("selector", r.LabelSelector),
	)
	return hosts, nil
}

func nodeAddress(n *v1.Node) string {
	for _, addr := range n.Status.Addresses {
		if addr.Type == v1.NodeInternalIP {
			return addr.Address
		}
	}
	return n.Name
}

// buildClient creates a Kubernetes client from the given kubeconfig file,
// discovering the configuration when none is supplied.
func buildClient(kubeconfig string) (kubernetes.Interface, error) {
	if kubeconfig == "" {
		kubeconfig = os.Getenv("KUBECONFIG")
		if kubeconfig == "" {
			kubeconfig = filepath.Join(homedir.HomeDir(), ".kube", "config")
			if _, err := os.Stat(kubeconfig); os.IsNotExist(err) {
				kubeconfig = ""
			}
		}
	}

	var (
		config *rest.Config
		err    error
	)
	if kubeconfig == "" {
		config, err = rest.InClusterConfig()
		if err != nil {
			return nil, fmt.Errorf("failed to get in-cluster config: %w", err)
		}
	} else {
		config, err = clientcmd.BuildConfigFromFlags("", kubeconfig)
		if err != nil {
			return nil, fmt.Errorf("failed to build kube config from %s: %w", kubeconfig, err)
		}
	}

	client, err := kubernetes.NewForConfig(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create kubernetes client: %w", err)
	}
	return client, nil
}
