package main

import (
	"context"
)

func (cli *commandLine) resetPassword(uname, pwd string) error {
	if _, err := cli.usrSvc.ResetPassword(context.Background(), uname, pwd); err != nil {
		return err
	}
	return nil
}
