// Package service ties the gateway components together.
//
// GatewayService owns one adapter, the subscription registry, the gRPC
// server and the optional metrics endpoint and mDNS advertisement. It is
// the single place that decides start and shutdown order:
//
//   - Start connects the adapter, listens, serves gRPC, then advertises.
//   - Stop withdraws the advertisement, tears down every subscription,
//     stops the gRPC server and closes the adapter.
//
// Example usage:
//
//	cfg, _ := config.Load("gropc.yaml")
//	a := opcua.New(opcua.DefaultConfig(cfg.OPCUA.Endpoint))
//
//	svc, err := service.NewGatewayService(a, service.FromConfig(cfg))
//	if err != nil {
//		return err
//	}
//	if err := svc.Start(ctx); err != nil {
//		return err
//	}
//	defer svc.Stop()
package service
