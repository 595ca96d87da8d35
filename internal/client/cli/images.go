package cli

import (
	"context"
	"fmt"
	"os"
)

// SetImage uploads a local file as the custom image of a group.
func (a *App) SetImage(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return a.usage("setimage <group number> <file path>")
	}
	number, err := parseNumber(args[0])
	if err != nil {
		return a.fail(ctx, "set image", err)
	}
	data, err := os.ReadFile(args[1])
	if err != nil {
		return a.fail(ctx, "set image", err)
	}

	if err := a.groups.SetImage(ctx, number, data); err != nil {
		return a.fail(ctx, "set image", err)
	}
	fmt.Fprintf(a.out, "Image of group %d updated.\n", number)
	return nil
}

// GetImage downloads the custom image of a group into the image directory.
func (a *App) GetImage(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return a.usage("getimage <group number>")
	}
	number, err := parseNumber(args[0])
	if err != nil {
		return a.fail(ctx, "get image", err)
	}

	path, err := a.groups.FetchImage(ctx, number)
	if err != nil {
		return a.fail(ctx, "get image", err)
	}
	fmt.Fprintf(a.out, "Image saved to: %s\n", path)
	return nil
}
