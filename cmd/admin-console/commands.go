package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/vendaro/admin-console/analytics"
	"github.com/vendaro/admin-console/auth"
	"github.com/vendaro/admin-console/orders"
	"github.com/vendaro/admin-console/usermgmt"
	"github.com/vendaro/admin-console/vendors"
)

func (a *app) cmdLogin(args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	email := fs.String("email", "", "admin email")
	password := fs.String("password", "", "admin password (prompted when omitted)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *email == "" {
		return fmt.Errorf("login: -email is required")
	}
	if *password == "" {
		fmt.Print("Password: ")
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil {
			return err
		}
		*password = strings.TrimSpace(line)
	}

	resp, err := a.auth.Login(context.Background(), *email, *password)
	if err != nil {
		return err
	}
	fmt.Printf("Logged in as %s (%s)\n", resp.User.Name, resp.User.Email)
	return nil
}

func (a *app) cmdLogout() error {
	a.auth.Logout()
	fmt.Println("Logged out")
	return nil
}

func (a *app) cmdWhoami() error {
	user := a.store.CurrentUser()
	if user == nil {
		fmt.Println("Not logged in")
		return nil
	}
	fmt.Printf("%s <%s> role=%s\n", user.Name, user.Email, user.Role)
	if a.auth.IsTokenExpired() {
		fmt.Println("Access token has expired; run 'validate' or login again")
	}
	return nil
}

func (a *app) cmdValidate(args []string) error {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	refresh := fs.Bool("refresh", false, "refresh the access token when expired")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *refresh && a.auth.IsTokenExpired() {
		if _, err := a.auth.RefreshToken(context.Background()); err != nil {
			return err
		}
		fmt.Println("Token refreshed")
	}

	if _, err := a.auth.ValidateToken(context.Background()); err != nil {
		return err
	}
	fmt.Println("Token is valid")
	return nil
}

func (a *app) cmdDashboard(args []string) error {
	fs := flag.NewFlagSet("dashboard", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	dash, err := analytics.NewClient(a.api).Dashboard(context.Background())
	if err != nil {
		return err
	}

	fmt.Printf("Totals: %d users, %d vendors, %d products, %d orders\n",
		dash.Totals.Users, dash.Totals.Vendors, dash.Totals.Products, dash.Totals.Orders)
	fmt.Printf("Revenue today %.2f (%d orders), month %.2f, year %.2f, all time %.2f\n",
		dash.GlobalSales.Today.Revenue, dash.GlobalSales.Today.Orders,
		dash.GlobalSales.ThisMonth.Revenue, dash.GlobalSales.ThisYear.Revenue,
		dash.GlobalSales.Total.Revenue)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TOP VENDORS\tSALES\tPRODUCTS\tORDERS")
	for _, v := range dash.TopVendors {
		fmt.Fprintf(w, "%s\t%.2f\t%d\t%d\n", v.BusinessName, v.TotalSales, v.Count.Products, v.Count.Orders)
	}
	return w.Flush()
}

func (a *app) cmdVendors(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("vendors: expected list|unapproved|approve|reject")
	}
	sub, rest := args[0], args[1:]
	fs := flag.NewFlagSet("vendors "+sub, flag.ContinueOnError)
	id := fs.String("id", "", "vendor ID")
	page := fs.Int("page", 1, "page")
	limit := fs.Int("limit", 10, "page size")
	if err := fs.Parse(rest); err != nil {
		return err
	}

	client := vendors.NewClient(a.api)
	ctx := context.Background()

	switch sub {
	case "list", "unapproved":
		var pageResp *vendors.Page
		var err error
		if sub == "list" {
			pageResp, err = client.List(ctx, *page, *limit)
		} else {
			pageResp, err = client.Unapproved(ctx, *page, *limit)
		}
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tBUSINESS\tEMAIL\tAPPROVED\tSALES")
		for _, v := range pageResp.Vendors {
			fmt.Fprintf(w, "%s\t%s\t%s\t%t\t%.2f\n", v.ID, v.BusinessName, v.Email, v.IsApproved, v.TotalSales)
		}
		if err := w.Flush(); err != nil {
			return err
		}
		fmt.Printf("Page %d/%d (%d total)\n", pageResp.Pagination.Page, pageResp.Pagination.TotalPages, pageResp.Pagination.Total)
		return nil
	case "approve":
		if *id == "" {
			return fmt.Errorf("vendors approve: -id is required")
		}
		res, err := client.Approve(ctx, *id)
		if err != nil {
			return err
		}
		fmt.Printf("Approved %s (%s)\n", res.BusinessName, res.ID)
		return nil
	case "reject":
		if *id == "" {
			return fmt.Errorf("vendors reject: -id is required")
		}
		res, err := client.Reject(ctx, *id)
		if err != nil {
			return err
		}
		fmt.Printf("Rejected %s (%s)\n", res.BusinessName, res.ID)
		return nil
	default:
		return fmt.Errorf("vendors: unknown subcommand %q", sub)
	}
}

func (a *app) cmdOrders(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("orders: expected list|show|status|cancel")
	}
	sub, rest := args[0], args[1:]
	fs := flag.NewFlagSet("orders "+sub, flag.ContinueOnError)
	id := fs.String("id", "", "order ID")
	status := fs.String("status", "", "status filter")
	to := fs.String("to", "", "new status")
	page := fs.Int("page", 1, "page")
	limit := fs.Int("limit", 10, "page size")
	if err := fs.Parse(rest); err != nil {
		return err
	}

	client := orders.NewClient(a.api)
	ctx := context.Background()

	switch sub {
	case "list":
		var pageResp *orders.Page
		var err error
		if *status != "" {
			pageResp, err = client.ByStatus(ctx, *status, *page, *limit)
		} else {
			pageResp, err = client.List(ctx, *page, *limit)
		}
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ORDER\tSTATUS\tAMOUNT\tCUSTOMER\tVENDOR")
		for _, o := range pageResp.Orders {
			fmt.Fprintf(w, "%s\t%s\t%.2f\t%s\t%s\n", o.OrderNumber, o.Status, o.FinalAmount, o.User.Name, o.Vendor.BusinessName)
		}
		return w.Flush()
	case "show":
		if *id == "" {
			return fmt.Errorf("orders show: -id is required")
		}
		o, err := client.Order(ctx, *id)
		if err != nil {
			return err
		}
		fmt.Printf("%s status=%s payment=%s/%s total=%.2f final=%.2f items=%d\n",
			o.OrderNumber, o.Status, o.PaymentMethod, o.PaymentStatus, o.TotalAmount, o.FinalAmount, len(o.Items))
		return nil
	case "status":
		if *id == "" || *to == "" {
			return fmt.Errorf("orders status: -id and -to are required")
		}
		o, err := client.UpdateStatus(ctx, *id, *to)
		if err != nil {
			return err
		}
		fmt.Printf("%s is now %s\n", o.OrderNumber, o.Status)
		return nil
	case "cancel":
		if *id == "" {
			return fmt.Errorf("orders cancel: -id is required")
		}
		o, err := client.Cancel(ctx, *id)
		if err != nil {
			return err
		}
		fmt.Printf("%s cancelled\n", o.OrderNumber)
		return nil
	default:
		return fmt.Errorf("orders: unknown subcommand %q", sub)
	}
}

func (a *app) cmdUsers(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("users: expected list|suspend|block|unblock|check-suspensions")
	}
	sub, rest := args[0], args[1:]
	fs := flag.NewFlagSet("users "+sub, flag.ContinueOnError)
	id := fs.String("id", "", "user ID")
	search := fs.String("search", "", "search query")
	duration := fs.String("duration", "", "suspension duration, e.g. 7d")
	reason := fs.String("reason", "", "moderation reason")
	page := fs.String("page", "", "page")
	limit := fs.String("limit", "", "page size")
	if err := fs.Parse(rest); err != nil {
		return err
	}

	client := usermgmt.NewClient(a.api)
	ctx := context.Background()

	switch sub {
	case "list":
		pageResp, err := client.Users(ctx, usermgmt.ListQuery{Page: *page, Limit: *limit, Search: *search})
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tEMAIL\tSTATUS\tORDERS")
		for _, u := range pageResp.Users {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n", u.ID, u.Name, u.Email, usermgmt.Status(u), u.Count.Orders)
		}
		return w.Flush()
	case "suspend":
		if *id == "" || *duration == "" || *reason == "" {
			return fmt.Errorf("users suspend: -id, -duration and -reason are required")
		}
		u, err := client.Suspend(ctx, *id, usermgmt.SuspendRequest{Duration: *duration, Reason: *reason})
		if err != nil {
			return err
		}
		fmt.Printf("%s suspended\n", u.Email)
		return nil
	case "block":
		if *id == "" || *reason == "" {
			return fmt.Errorf("users block: -id and -reason are required")
		}
		u, err := client.Block(ctx, *id, *reason)
		if err != nil {
			return err
		}
		fmt.Printf("%s blocked\n", u.Email)
		return nil
	case "unblock":
		if *id == "" {
			return fmt.Errorf("users unblock: -id is required")
		}
		u, err := client.Unblock(ctx, *id, *reason)
		if err != nil {
			return err
		}
		fmt.Printf("%s unblocked\n", u.Email)
		return nil
	case "check-suspensions":
		res, err := client.CheckSuspensions(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("%s (%d lifted)\n", res.Message, res.UnsuspendedUsers)
		return nil
	default:
		return fmt.Errorf("users: unknown subcommand %q", sub)
	}
}

func (a *app) cmdAdmins(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("admins: expected list|me|create|delete")
	}
	sub, rest := args[0], args[1:]
	fs := flag.NewFlagSet("admins "+sub, flag.ContinueOnError)
	id := fs.String("id", "", "admin ID")
	name := fs.String("name", "", "admin name")
	email := fs.String("email", "", "admin email")
	password := fs.String("password", "", "admin password")
	if err := fs.Parse(rest); err != nil {
		return err
	}

	ctx := context.Background()

	switch sub {
	case "list":
		admins, err := a.auth.Admins(ctx)
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tEMAIL\tROLE")
		for _, admin := range admins {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", admin.ID, admin.Name, admin.Email, admin.Role)
		}
		return w.Flush()
	case "me":
		admin, err := a.auth.Me(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("%s <%s> role=%s\n", admin.Name, admin.Email, admin.Role)
		return nil
	case "create":
		if *name == "" || *email == "" || *password == "" {
			return fmt.Errorf("admins create: -name, -email and -password are required")
		}
		admin, err := a.auth.CreateAdmin(ctx, auth.CreateAdminRequest{Name: *name, Email: *email, Password: *password})
		if err != nil {
			return err
		}
		fmt.Printf("Created admin %s (%s)\n", admin.Name, admin.ID)
		return nil
	case "delete":
		if *id == "" {
			return fmt.Errorf("admins delete: -id is required")
		}
		if err := a.auth.DeleteAdmin(ctx, *id); err != nil {
			return err
		}
		fmt.Println("Deleted")
		return nil
	default:
		return fmt.Errorf("admins: unknown subcommand %q", sub)
	}
}
