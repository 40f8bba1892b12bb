// Package interaction implements both ends of the gateway service.
//
// The gateway exposes four operations on node values:
//
//   - ReadValue: read the current value of one node
//   - WriteValue: write one node, subject to the write whitelist
//   - SubscribeValue: stream changes of a primary node together with fresh
//     reads of its associated nodes
//   - UnsubscribeValue: end a subscription created by the same client
//
// # Server Usage
//
// Server implements the generated GatewayServiceServer on top of an
// adapter.Adapter and a subscription.Registry:
//
//	registry := subscription.NewRegistry(a, subscription.DefaultConfig())
//	srv := interaction.NewServer(a, registry, interaction.ServerConfig{
//	    Whitelist: whitelist.New([]string{"ns=2;s=Setpoint"}),
//	})
//	apiv1.RegisterGatewayServiceServer(grpcServer, srv)
//
// # Client Usage
//
// Client wraps the generated stub with typed helpers:
//
//	client, err := interaction.Dial("localhost:50051", interaction.DefaultClientConfig())
//
//	value, err := client.Read(ctx, "ns=2;s=Temperature")
//	temp, err := interaction.ReadAs[float64](ctx, client, "ns=2;s=Temperature")
//	err = client.Write(ctx, "ns=2;s=Setpoint", 42)
//
// Subscriptions survive broken streams. The runner reopens the stream
// according to its connection.ReconnectionPolicy:
//
//	sub, err := interaction.NewSubscription[float64](client, "ns=2;s=Temperature")
//	_ = sub.SetAssociated([]string{"ns=2;s=Pressure"})
//	sub.OnChange(func(r interaction.Response[float64]) {
//	    fmt.Println(r.Value, r.Associated["ns=2;s=Pressure"])
//	})
//	err = sub.Subscribe(ctx)
//	...
//	sub.Unsubscribe()
package interaction
