package main

import (
	"context"
	"fmt"
)

// addUser creates an account for the private management surface.
func (cli *commandLine) addUser(name, uname, email, pwd string, isAdmin bool) error {
	usr, err := cli.usrSvc.Create(context.Background(), name, uname, email, pwd, isAdmin)
	if err != nil {
		return err
	}
	fmt.Printf("user %q created\n", usr.Username)
	return nil
}
