package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/dverbis/itemkeeper/internal/client/models"
)

// List fetches and prints the current user's items.
func (a *App) List(ctx context.Context) error {
	items, err := a.gateway.ListItems(ctx)
	if err != nil {
		fmt.Println(errMessage(err))
		return err
	}

	if len(items) == 0 {
		fmt.Println("No items yet, use 'add' to create one")
		return nil
	}

	for _, item := range items {
		fmt.Printf("%s  %s\n", item.ID, item.Title)
		if item.Description != "" {
			fmt.Printf("    %s\n", item.Description)
		}
	}
	return nil
}

// Add prompts for a title and description and creates a new item. The item
// list is refetched afterwards so the view reflects the server state.
func (a *App) Add(ctx context.Context) error {
	draft, err := a.readDraft(models.ItemDraft{})
	if err != nil {
		return err
	}

	if draft.Title == "" {
		fmt.Println("Title must not be empty")
		return nil
	}

	if _, err := a.gateway.CreateItem(ctx, draft); err != nil {
		fmt.Println(errMessage(err))
		return err
	}

	fmt.Println("Item created")
	return a.List(ctx)
}

// Edit prompts for an item id and replacement fields, then updates the item.
// Leaving the title empty keeps the current one.
func (a *App) Edit(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Enter item id to edit", os.Stdout)
	if err != nil {
		return err
	}

	draft, err := a.readDraft(models.ItemDraft{})
	if err != nil {
		return err
	}

	if _, err := a.gateway.UpdateItem(ctx, id, draft); err != nil {
		fmt.Println(errMessage(err))
		return err
	}

	fmt.Println("Item updated")
	return a.List(ctx)
}

// Delete prompts for an item id and removes the item.
func (a *App) Delete(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Enter item id to delete", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.gateway.DeleteItem(ctx, id); err != nil {
		fmt.Println(errMessage(err))
		return err
	}

	fmt.Println("Item deleted")
	return a.List(ctx)
}

func (a *App) readDraft(draft models.ItemDraft) (models.ItemDraft, error) {
	title, err := getSimpleText(a.reader, "Enter title", os.Stdout)
	if err != nil {
		return draft, err
	}

	description, err := GetMultiline(a.reader, "Enter description", os.Stdout)
	if err != nil {
		return draft, err
	}

	if title != "" {
		draft.Title = title
	}
	draft.Description = description
	return draft, nil
}
