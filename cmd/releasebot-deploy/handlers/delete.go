package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/shresthagrawal/release-bot/internal/cluster"
)

// confirmDelete asks before anything is removed - can be replaced in
// tests.
var confirmDelete = defaultConfirmDelete

// DeleteOptions bundles the flags of the delete command.
type DeleteOptions struct {
	App        string
	ConfigPath string
	Kubeconfig string
	Namespace  string
	All        bool
	Yes        bool
}

// Delete removes the deployment objects of one application, or of
// every application deployed from the template when All is set.
func Delete(ctx context.Context, opts DeleteOptions) error {
	app := opts.App
	namespace := opts.Namespace
	if !opts.All {
		var err error
		app, namespace, err = resolveApp(app, opts.ConfigPath, namespace)
		if err != nil {
			return err
		}
	}

	client, err := newClusterClient(opts.Kubeconfig, namespace)
	if err != nil {
		return err
	}

	if !opts.Yes && !confirmDelete(deleteSubject(app, opts.All, client.Namespace())) {
		fmt.Println("Aborted.")
		return nil
	}

	var results []cluster.Result
	if opts.All {
		results, err = client.DeleteFleet(ctx)
	} else {
		results, err = client.Delete(ctx, app)
	}
	printResults(results)
	if err != nil {
		return fmt.Errorf("delete failed: %w", err)
	}

	if len(results) == 0 {
		fmt.Println("Nothing to delete.")
	}
	return nil
}

func deleteSubject(app string, all bool, namespace string) string {
	if all {
		return fmt.Sprintf("every release-bot deployment in namespace %s", namespace)
	}
	return fmt.Sprintf("application %s in namespace %s", app, namespace)
}

func defaultConfirmDelete(subject string) bool {
	fmt.Printf("Delete %s? [y/N]: ", subject)

	var response string
	_, _ = fmt.Scanln(&response)
	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes"
}
